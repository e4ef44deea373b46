package model

// CustomerProfile is one payer's behavioral aggregate. Clustering operates at
// this grain, not per invoice.
type CustomerProfile struct {
	PayerID           string
	PurchaseFrequency float64
	AvgTicket         float64
	AvgDaysLate       float64
}

// CustomerAssignment is the customer-grain clustering outcome. The anomaly
// flag comes from the density detector and is orthogonal to the partition: a
// VIP customer can still be anomalous.
type CustomerAssignment struct {
	PayerID      string
	ClusterID    int
	ProfileLabel string
	Anomalous    bool
}

// InvoicePayer links an invoice to its payer, used to expand customer-grain
// assignments back to invoice grain.
type InvoicePayer struct {
	InvoiceID string
	PayerID   string
}

// ClusterAssignment is one materialized invoice-grain row. ProfileText is the
// customer's profile label, suffixed with the anomaly alert when flagged.
type ClusterAssignment struct {
	InvoiceID   string
	ClusterID   int
	ProfileText string
}
