// pkg/export/export.go

// Package export runs the fetch, build, render and optional archive steps for
// invoice and report downloads.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizbooks-service/pkg/document"
	"github.com/bizbooks-service/pkg/expense"
	"github.com/bizbooks-service/pkg/invoice"
	"github.com/bizbooks-service/pkg/logging"
	"github.com/bizbooks-service/pkg/profile"
	"github.com/bizbooks-service/pkg/render"
	"github.com/bizbooks-service/pkg/session"
	"github.com/bizbooks-service/pkg/storage"
	"github.com/bizbooks-service/pkg/store"
	"github.com/sirupsen/logrus"
)

const module = "export"

// Options selects the output format and whether to archive the artifact.
type Options struct {
	Format  render.Format
	Archive bool
}

// Result is a rendered artifact. It is never written anywhere unless
// ArchiveKey is set.
type Result struct {
	FileName    string
	ContentType string
	Data        []byte
	ArchiveKey  string
}

type Service struct {
	repo      store.Repository
	objects   storage.Store
	pageWidth float64
	logger    *logrus.Logger
	now       func() time.Time
}

// NewService wires the export pipeline. objects may be nil, in which case
// logos are not embedded and archiving fails.
func NewService(repo store.Repository, objects storage.Store, pageWidth float64, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Service{
		repo:      repo,
		objects:   objects,
		pageWidth: pageWidth,
		logger:    logger,
		now:       time.Now,
	}
}

// Invoice exports the invoice with the given id.
func (s *Service) Invoice(ctx context.Context, sess session.Session, id string, opts Options) (*Result, error) {
	inv, err := s.repo.GetInvoice(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	return s.invoice(ctx, sess, inv, opts)
}

// InvoiceByNumber exports the invoice with the given user-chosen number.
func (s *Service) InvoiceByNumber(ctx context.Context, sess session.Session, number string, opts Options) (*Result, error) {
	inv, err := s.repo.GetInvoiceByNumber(ctx, sess, number)
	if err != nil {
		return nil, err
	}
	return s.invoice(ctx, sess, inv, opts)
}

func (s *Service) invoice(ctx context.Context, sess session.Session, inv *invoice.Invoice, opts Options) (*Result, error) {
	prof, err := s.profile(ctx, sess)
	if err != nil {
		return nil, err
	}
	doc, err := document.BuildInvoice(inv, prof, s.builderOptions(sess))
	if err != nil {
		return nil, s.buildError("Invoice", inv.InvoiceNumber, err)
	}
	return s.finish(ctx, sess, doc, opts)
}

// TaxReport exports entries for year, or every year when year is 0.
func (s *Service) TaxReport(ctx context.Context, sess session.Session, year int, opts Options) (*Result, error) {
	entries, err := s.repo.ListTaxEntries(ctx, sess)
	if err != nil {
		return nil, err
	}
	prof, err := s.profile(ctx, sess)
	if err != nil {
		return nil, err
	}
	doc, err := document.BuildTaxReport(entries, year, prof, s.builderOptions(sess))
	if err != nil {
		return nil, s.buildError("TaxReport", year, err)
	}
	return s.finish(ctx, sess, doc, opts)
}

// ExpenseReport exports the expenses matching filter.
func (s *Service) ExpenseReport(ctx context.Context, sess session.Session, filter expense.Filter, opts Options) (*Result, error) {
	all, err := s.repo.ListExpenses(ctx, sess)
	if err != nil {
		return nil, err
	}
	prof, err := s.profile(ctx, sess)
	if err != nil {
		return nil, err
	}
	doc, err := document.BuildExpenseReport(filter.Apply(all), prof, s.builderOptions(sess))
	if err != nil {
		return nil, s.buildError("ExpenseReport", filter, err)
	}
	return s.finish(ctx, sess, doc, opts)
}

func (s *Service) builderOptions(sess session.Session) document.Options {
	return document.Options{Locale: sess.Locale, Now: s.now()}
}

// profile returns nil without error when the user never saved one.
func (s *Service) profile(ctx context.Context, sess session.Session) (*profile.CompanyProfile, error) {
	p, err := s.repo.GetProfile(ctx, sess)
	if errors.Is(err, profile.ErrProfileNotFound) {
		return nil, nil
	}
	return p, err
}

func (s *Service) buildError(funcName string, data any, err error) error {
	if errors.Is(err, document.ErrNoRecordsToExport) {
		s.logger.WithFields(logrus.Fields{"module": module, "funcName": funcName, "data": data}).
			Info("nothing to export")
	}
	return err
}

// attachImages loads image data for blocks that reference stored objects.
// Missing objects leave the block empty so the renderer skips it.
func (s *Service) attachImages(ctx context.Context, doc *document.Document) {
	if s.objects == nil {
		return
	}
	for _, img := range doc.Images() {
		data, err := s.objects.Get(ctx, img.Ref)
		if err != nil {
			logging.LogError(s.logger, module, "attachImages", "storage.Get", img.Ref, err)
			continue
		}
		img.Data = data
	}
}

func (s *Service) finish(ctx context.Context, sess session.Session, doc *document.Document, opts Options) (*Result, error) {
	s.attachImages(ctx, doc)

	r := render.ForFormat(opts.Format)
	data, err := r.Render(doc, s.pageWidth)
	if err != nil {
		logging.LogError(s.logger, module, "finish", "render", doc.FileName, err)
		return nil, err
	}

	res := &Result{
		FileName:    render.FileName(doc, r),
		ContentType: r.ContentType(),
		Data:        data,
	}
	if opts.Archive {
		if err := s.archive(ctx, sess, res); err != nil {
			logging.LogError(s.logger, module, "finish", "archive", res.FileName, err)
			return nil, err
		}
	}
	return res, nil
}

func (s *Service) archive(ctx context.Context, sess session.Session, res *Result) error {
	if s.objects == nil {
		return errors.New("archive requested but no object storage configured")
	}
	key, err := storage.ObjectKey(sess.UserID, storage.KindDocuments, res.FileName)
	if err != nil {
		return err
	}
	if err := s.objects.Put(ctx, key, bytes.NewReader(res.Data), res.ContentType); err != nil {
		return fmt.Errorf("archive %s: %w", res.FileName, err)
	}
	res.ArchiveKey = key
	return nil
}
