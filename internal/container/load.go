package container

import (
	"fjacquet/portfolio-report/internal/exposure"
	"fjacquet/portfolio-report/internal/logging"
	"fjacquet/portfolio-report/internal/metrics"
	"fjacquet/portfolio-report/internal/models"
	"fjacquet/portfolio-report/internal/rawdoc"
	"fjacquet/portfolio-report/internal/validation"

	"github.com/google/uuid"
)

// Snapshot is the result of one document load: the raw document, the
// normalized model and the figures derived from it. A new load produces a
// new Snapshot; a Snapshot is never updated.
type Snapshot struct {
	LoadID    string
	Document  rawdoc.Document
	Portfolio *models.Portfolio
	Metrics   metrics.Metrics
	Matrix    exposure.Matrix
}

// Load acquires the document at path and builds a Snapshot from it. When
// acquisition fails the error is returned together with a Snapshot holding
// the empty model, so callers can still render empty sections.
func (c *Container) Load(path string) (*Snapshot, error) {
	doc, err := c.acquire(path)
	if err != nil {
		snap := c.LoadDocument(rawdoc.Document{})
		c.logger.WithError(err).Error("Failed to load portfolio document",
			logging.F(logging.FieldFile, path),
			logging.F(logging.FieldLoadID, snap.LoadID))
		return snap, err
	}
	return c.LoadDocument(doc), nil
}

func (c *Container) acquire(path string) (rawdoc.Document, error) {
	if err := validation.IsValidInputFile(path); err != nil {
		return rawdoc.Document{}, err
	}
	return rawdoc.LoadFile(path)
}

// LoadDocument builds a Snapshot from an already acquired document, such as
// one injected in memory.
func (c *Container) LoadDocument(doc rawdoc.Document) *Snapshot {
	loadID := uuid.NewString()
	logger := c.logger.WithField(logging.FieldLoadID, loadID)

	p := c.normalizer.WithLogger(logger).Normalize(doc)
	m := metrics.Compute(p, doc)
	matrix := exposure.Build(c.accounts, p.OverallAssets, p.AccountExposure)

	if unmatched := exposure.Unmatched(c.accounts, p.OverallAssets, p.AccountExposure); len(unmatched) > 0 {
		logger.Debug("Exposure cells outside the matrix",
			logging.F(logging.FieldCount, len(unmatched)))
	}
	logger.Info("Portfolio loaded",
		logging.F(logging.FieldFile, doc.Source()),
		logging.F("total_value", m.TotalValue.Value.String()))

	return &Snapshot{
		LoadID:    loadID,
		Document:  doc,
		Portfolio: p,
		Metrics:   m,
		Matrix:    matrix,
	}
}
