package postgres

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/leonardo-lacerda-data/nuclea-fidics/internal/domain/model"
)

// Source relations in the fund datamart. The views are maintained by the
// ingestion jobs; this package only reads them.
const (
	riskViewName     = "v_risk_training"
	customerViewName = "v_customer_behavior"
	invoicesTable    = "invoices"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// FeatureViewRepo reads the pre-joined feature views. Implements
// port.RiskFeatureSource and port.CustomerFeatureSource.
type FeatureViewRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewFeatureViewRepo creates a datamart-backed feature source.
func NewFeatureViewRepo(pool *pgxpool.Pool, logger *slog.Logger) *FeatureViewRepo {
	return &FeatureViewRepo{pool: pool, logger: logger}
}

// FetchRiskView reads the invoice-grain risk view. The view's column set
// varies across datamart versions, so the select is a star and the returned
// FeatureSet records what was actually there. An unreachable or broken view
// degrades to an empty dataset: the engines treat that as "skip the run",
// which protects previously materialized results from a transient outage.
func (r *FeatureViewRepo) FetchRiskView(ctx context.Context) (model.RiskView, error) {
	query, args, err := psql.Select("*").From(riskViewName).ToSql()
	if err != nil {
		return model.RiskView{}, fmt.Errorf("build risk view query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Warn("risk view unavailable, degrading to empty dataset", "error", err)
		return model.RiskView{}, nil
	}
	defer rows.Close()

	columns := make(model.FeatureSet)
	for _, fd := range rows.FieldDescriptions() {
		columns[fd.Name] = true
	}

	var out []model.FeatureRow
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			r.logger.Warn("risk view read failed mid-scan, degrading to empty dataset", "error", err)
			return model.RiskView{}, nil
		}
		row := model.FeatureRow{}
		for i, fd := range rows.FieldDescriptions() {
			assignField(&row, fd.Name, values[i])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		r.logger.Warn("risk view read failed, degrading to empty dataset", "error", err)
		return model.RiskView{}, nil
	}

	return model.RiskView{Rows: out, Columns: columns}, nil
}

// FetchCustomerView reads the customer-grain behavioral aggregates. Same
// degrade-to-empty contract as FetchRiskView.
func (r *FeatureViewRepo) FetchCustomerView(ctx context.Context) ([]model.CustomerProfile, error) {
	query, args, err := psql.
		Select("payer_id", "purchase_frequency", "avg_ticket", "avg_days_late").
		From(customerViewName).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build customer view query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Warn("customer view unavailable, degrading to empty dataset", "error", err)
		return nil, nil
	}
	defer rows.Close()

	var out []model.CustomerProfile
	for rows.Next() {
		var p model.CustomerProfile
		if err := rows.Scan(&p.PayerID, &p.PurchaseFrequency, &p.AvgTicket, &p.AvgDaysLate); err != nil {
			r.logger.Warn("customer view read failed mid-scan, degrading to empty dataset", "error", err)
			return nil, nil
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Warn("customer view read failed, degrading to empty dataset", "error", err)
		return nil, nil
	}

	return out, nil
}

// FetchInvoicePayers lists every invoice with its payer, for the expansion of
// customer-grain assignments back to invoice grain. Unlike the views, a
// failure here is an error: an empty list after a successful customer fetch
// would wipe the cluster table.
func (r *FeatureViewRepo) FetchInvoicePayers(ctx context.Context) ([]model.InvoicePayer, error) {
	query, args, err := psql.Select("invoice_id", "payer_id").From(invoicesTable).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build invoice payers query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query invoice payers: %w", err)
	}
	defer rows.Close()

	var out []model.InvoicePayer
	for rows.Next() {
		var ip model.InvoicePayer
		if err := rows.Scan(&ip.InvoiceID, &ip.PayerID); err != nil {
			return nil, fmt.Errorf("scan invoice payer: %w", err)
		}
		out = append(out, ip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read invoice payers: %w", err)
	}

	return out, nil
}

// assignField maps one view column onto the row. Unknown columns are ignored
// so the view can grow ahead of the engine.
func assignField(row *model.FeatureRow, name string, v any) {
	switch name {
	case "invoice_id":
		row.InvoiceID = toString(v)
	case "payer_id":
		row.PayerID = toString(v)
	case "sector_code":
		row.SectorCode = toString(v)
	case model.ColNominalValue:
		row.NominalValue = toDecimal(v)
	case model.ColTermDays:
		row.TermDays = toFloat(v)
	case model.ColMaterialityScore:
		row.MaterialityScore = toFloat(v)
	case model.ColVolumeScore:
		row.VolumeScore = toFloat(v)
	case model.ColPolicyRate:
		row.PolicyRate = toFloat(v)
	case model.ColFXRate:
		row.FXRate = toFloat(v)
	case model.ColUnemploymentRate:
		row.UnemploymentRate = toFloat(v)
	case model.ColActivityIndex:
		row.ActivityIndex = toFloat(v)
	case model.ColRetailVariation:
		row.RetailVariation = toFloat(v)
	case model.ColIndustryVariation:
		row.IndustryVariation = toFloat(v)
	case model.ColServicesVariation:
		row.ServicesVariation = toFloat(v)
	case model.ColAgroProductionVariation:
		row.AgroProductionVariation = toFloat(v)
	case model.ColLivestockVariation:
		row.LivestockVariation = toFloat(v)
	case model.ColSentimentScore:
		row.SentimentScore = toFloat(v)
	case model.ColMacroSectorCode:
		row.MacroSectorCode = toFloat(v)
	case model.TargetColumn:
		row.Target = toInt(v)
	}
}

// Null and type coercions: the view is supposed to zero-fill nulls, but the
// engine zero-fills again on ingest rather than trusting the producer.

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case [16]byte:
		var u pgtype.UUID
		u.Bytes, u.Valid = s, true
		out, err := u.Value()
		if err != nil {
			return ""
		}
		str, _ := out.(string)
		return str
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case int16:
		return float64(n)
	case int:
		return float64(n)
	case pgtype.Numeric:
		f, err := n.Float64Value()
		if err != nil || !f.Valid {
			return 0
		}
		return f.Float64
	default:
		return 0
	}
}

func toDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case pgtype.Numeric:
		if !n.Valid || n.Int == nil {
			return decimal.Zero
		}
		return decimal.NewFromBigInt(n.Int, n.Exp)
	default:
		return decimal.NewFromFloat(toFloat(v))
	}
}

func toInt(v any) int {
	switch n := v.(type) {
	case bool:
		if n {
			return 1
		}
		return 0
	default:
		return int(toFloat(v))
	}
}
