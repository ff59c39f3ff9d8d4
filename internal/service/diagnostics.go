package service

import (
	"pool_automation/internal/models"
	"pool_automation/internal/webstr"
)

// DiagnosticsService decodes raw LED strings, e.g. ones captured from a
// panel with an unusual layout.
type DiagnosticsService struct{}

func NewDiagnosticsService() *DiagnosticsService { return &DiagnosticsService{} }

// DecodeKeys returns the per-key states of raw as strings, plus the legend
// of known key names.
func (s *DiagnosticsService) DecodeKeys(raw string) KeyReport {
	decoded := webstr.Decode(raw)
	results := make(map[models.KeyID]string, len(decoded))
	for k, v := range decoded {
		results[k] = v.String()
	}
	return KeyReport{Results: results, Keys: models.KeyLegend()}
}
