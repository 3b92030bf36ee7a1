package service

import "github.com/prometheus/client_golang/prometheus"

// Upload outcomes recorded in cv_uploads_total.
const (
	uploadStatusOK       = "ok"
	uploadStatusRejected = "rejected"
	uploadStatusFailed   = "failed"
)

// UploadMetrics counts CV uploads by file type and outcome.
type UploadMetrics struct {
	uploads *prometheus.CounterVec
}

func NewUploadMetrics(reg prometheus.Registerer) (*UploadMetrics, error) {
	m := &UploadMetrics{
		uploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cv_uploads_total",
				Help: "CV uploads by file type and outcome.",
			},
			[]string{"file_type", "status"},
		),
	}
	if err := reg.Register(m.uploads); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *UploadMetrics) observe(fileType, status string) {
	if m == nil {
		return
	}
	if fileType == "" {
		fileType = "unknown"
	}
	m.uploads.WithLabelValues(fileType, status).Inc()
}
