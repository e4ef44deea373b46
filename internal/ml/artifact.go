package ml

import (
	"bytes"
	"encoding/gob"
	"fmt"

	randomforest "github.com/malaschitz/randomForest"
)

// Model store purposes.
const (
	PurposeRisk    = "risk"
	PurposeCluster = "cluster"
)

// RiskArtifact is the persisted unit for the risk engine: classifier, its
// paired scaler, and the feature names the pair was fitted on. The three
// travel as one blob; loading a model without its scaler is impossible.
type RiskArtifact struct {
	Features []string
	Scaler   *StandardScaler
	Forest   *randomforest.Forest
}

// ClusterArtifact is the persisted unit for the clustering engine.
type ClusterArtifact struct {
	Features  []string
	Scaler    *StandardScaler
	Centroids [][]float64
}

// Encode serializes the artifact.
func (a *RiskArtifact) Encode() ([]byte, error) {
	return encode(a)
}

// Encode serializes the artifact.
func (a *ClusterArtifact) Encode() ([]byte, error) {
	return encode(a)
}

// DecodeRiskArtifact deserializes a risk artifact payload.
func DecodeRiskArtifact(payload []byte) (*RiskArtifact, error) {
	var a RiskArtifact
	if err := decode(payload, &a); err != nil {
		return nil, err
	}
	if a.Scaler == nil || a.Forest == nil {
		return nil, fmt.Errorf("risk artifact missing scaler or model")
	}
	return &a, nil
}

// DecodeClusterArtifact deserializes a cluster artifact payload.
func DecodeClusterArtifact(payload []byte) (*ClusterArtifact, error) {
	var a ClusterArtifact
	if err := decode(payload, &a); err != nil {
		return nil, err
	}
	if a.Scaler == nil || len(a.Centroids) == 0 {
		return nil, fmt.Errorf("cluster artifact missing scaler or centroids")
	}
	return &a, nil
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("encode artifact: %w", err)
	}
	return buf.Bytes(), nil
}

func decode(payload []byte, v any) error {
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(v); err != nil {
		return fmt.Errorf("decode artifact: %w", err)
	}
	return nil
}
