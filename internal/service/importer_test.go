package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"devotional/internal/domain"
	"devotional/internal/service/mocks"
)

type ImporterTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	fetcher   *mocks.MockFetcher
	library   *mocks.MockLibrary
	records   *mocks.MockImportStore
	state     *mocks.MockImportStateStore
	txManager *mocks.MockTransactionManager
	publisher *mocks.MockPublisher

	importer *Importer
	logger   *slog.Logger
}

func (s *ImporterTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.fetcher = mocks.NewMockFetcher(s.ctrl)
	s.library = mocks.NewMockLibrary(s.ctrl)
	s.records = mocks.NewMockImportStore(s.ctrl)
	s.state = mocks.NewMockImportStateStore(s.ctrl)
	s.txManager = mocks.NewMockTransactionManager(s.ctrl)
	s.publisher = mocks.NewMockPublisher(s.ctrl)

	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.importer = NewImporter(
		s.fetcher,
		s.library,
		s.records,
		s.state,
		s.txManager,
		s.publisher,
		s.logger,
	)
}

func (s *ImporterTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestImporterTestSuite(t *testing.T) {
	suite.Run(t, new(ImporterTestSuite))
}

func (s *ImporterTestSuite) expectTransaction() {
	s.txManager.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
}

func (s *ImporterTestSuite) expectStateUpdate(total int64) {
	s.state.EXPECT().Get(gomock.Any(), domain.KindPrayers, "en").Return(&domain.ImportState{Kind: domain.KindPrayers, Language: "en"}, nil)
	s.state.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, state *domain.ImportState) error {
			s.Equal(total, state.TotalImported)
			s.False(state.LastImportedAt.IsZero())
			return nil
		},
	)
}

func (s *ImporterTestSuite) TestImport_NewRecords() {
	ctx := context.Background()
	now := time.Now()

	records := []domain.Record{
		{ID: "external-prayers-en-0", Kind: domain.KindPrayers, Language: "en", Slug: "our-father", Title: "Our Father", UpdatedAt: now},
	}

	s.fetcher.EXPECT().Fetch(ctx, domain.KindPrayers, "en").Return(records)
	s.records.EXPECT().GetExistingBySlugs(ctx, domain.KindPrayers, "en", []string{"our-father"}).Return(map[string]time.Time{}, nil)
	s.expectTransaction()
	s.records.EXPECT().Upsert(ctx, &records[0]).Return("p-1", nil)
	s.publisher.EXPECT().Publish(ctx, &records[0], true).Return(nil)
	s.expectStateUpdate(1)

	stats, err := s.importer.Import(ctx, domain.KindPrayers, "en")

	s.NoError(err)
	s.Equal(1, stats.Fetched)
	s.Equal(1, stats.New)
	s.Equal(0, stats.Updated)
	s.Equal(0, stats.Skipped)
	s.Equal(1, stats.Published)
}

func (s *ImporterTestSuite) TestImport_FallsBackToBuiltIn() {
	ctx := context.Background()
	now := time.Now()

	builtIn := []domain.Record{
		{ID: "builtin-prayers-en-0", Kind: domain.KindPrayers, Language: "en", Slug: "our-father", Title: "Our Father", UpdatedAt: now},
		{ID: "builtin-prayers-en-1", Kind: domain.KindPrayers, Language: "en", Slug: "hail-mary", Title: "Hail Mary", UpdatedAt: now},
	}

	s.fetcher.EXPECT().Fetch(ctx, domain.KindPrayers, "en").Return([]domain.Record{})
	s.library.EXPECT().BuiltIn(domain.KindPrayers, "en").Return(builtIn)
	s.records.EXPECT().GetExistingBySlugs(ctx, domain.KindPrayers, "en", []string{"our-father", "hail-mary"}).Return(map[string]time.Time{}, nil)
	s.txManager.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	).Times(2)
	s.records.EXPECT().Upsert(ctx, gomock.Any()).Return("id", nil).Times(2)
	s.publisher.EXPECT().Publish(ctx, gomock.Any(), true).Return(nil).Times(2)
	s.expectStateUpdate(2)

	stats, err := s.importer.Import(ctx, domain.KindPrayers, "en")

	s.NoError(err)
	s.Equal(2, stats.New)
}

func (s *ImporterTestSuite) TestImport_UpdatedRecords() {
	ctx := context.Background()
	now := time.Now()

	records := []domain.Record{
		{Kind: domain.KindPrayers, Language: "en", Slug: "our-father", Title: "Our Father (revised)", UpdatedAt: now},
	}

	s.fetcher.EXPECT().Fetch(ctx, domain.KindPrayers, "en").Return(records)
	s.records.EXPECT().GetExistingBySlugs(ctx, domain.KindPrayers, "en", []string{"our-father"}).Return(
		map[string]time.Time{"our-father": now.Add(-time.Hour)}, nil,
	)
	s.expectTransaction()
	s.records.EXPECT().Upsert(ctx, &records[0]).Return("p-1", nil)
	s.publisher.EXPECT().Publish(ctx, &records[0], false).Return(nil)
	s.expectStateUpdate(1)

	stats, err := s.importer.Import(ctx, domain.KindPrayers, "en")

	s.NoError(err)
	s.Equal(0, stats.New)
	s.Equal(1, stats.Updated)
}

func (s *ImporterTestSuite) TestImport_SkipsUnchangedAndDuplicates() {
	ctx := context.Background()
	now := time.Now()

	records := []domain.Record{
		{Kind: domain.KindPrayers, Language: "en", Slug: "our-father", Title: "Our Father", UpdatedAt: now.Add(-time.Hour)},
		{Kind: domain.KindPrayers, Language: "en", Slug: "glory-be", Title: "Glory Be", UpdatedAt: now},
		{Kind: domain.KindPrayers, Language: "en", Slug: "glory-be", Title: "Glory Be (copy)", UpdatedAt: now},
	}

	s.fetcher.EXPECT().Fetch(ctx, domain.KindPrayers, "en").Return(records)
	s.records.EXPECT().GetExistingBySlugs(ctx, domain.KindPrayers, "en", []string{"our-father", "glory-be", "glory-be"}).Return(
		map[string]time.Time{"our-father": now}, nil,
	)
	s.expectTransaction()
	s.records.EXPECT().Upsert(ctx, &records[1]).Return("p-2", nil)
	s.publisher.EXPECT().Publish(ctx, &records[1], true).Return(nil)
	s.expectStateUpdate(1)

	stats, err := s.importer.Import(ctx, domain.KindPrayers, "en")

	s.NoError(err)
	s.Equal(3, stats.Fetched)
	s.Equal(1, stats.New)
	s.Equal(2, stats.Skipped)
}

func (s *ImporterTestSuite) TestImport_UpsertErrorCounted() {
	ctx := context.Background()

	records := []domain.Record{
		{Kind: domain.KindPrayers, Language: "en", Slug: "our-father", Title: "Our Father", UpdatedAt: time.Now()},
	}

	s.fetcher.EXPECT().Fetch(ctx, domain.KindPrayers, "en").Return(records)
	s.records.EXPECT().GetExistingBySlugs(ctx, domain.KindPrayers, "en", []string{"our-father"}).Return(map[string]time.Time{}, nil)
	s.expectTransaction()
	s.records.EXPECT().Upsert(ctx, &records[0]).Return("", errors.New("constraint violation"))
	s.expectStateUpdate(0)

	stats, err := s.importer.Import(ctx, domain.KindPrayers, "en")

	s.NoError(err)
	s.Equal(1, stats.Errors)
	s.Equal(0, stats.New)
	s.Equal(0, stats.Published)
}

func (s *ImporterTestSuite) TestImport_ExistingLookupError() {
	ctx := context.Background()

	records := []domain.Record{{Kind: domain.KindPrayers, Language: "en", Slug: "our-father", Title: "Our Father"}}

	s.fetcher.EXPECT().Fetch(ctx, domain.KindPrayers, "en").Return(records)
	s.records.EXPECT().GetExistingBySlugs(ctx, domain.KindPrayers, "en", []string{"our-father"}).Return(nil, errors.New("db down"))

	stats, err := s.importer.Import(ctx, domain.KindPrayers, "en")

	s.Error(err)
	s.Nil(stats)
	s.Contains(err.Error(), "filter for import")
}

func (s *ImporterTestSuite) TestImport_NothingToLoad() {
	ctx := context.Background()

	s.fetcher.EXPECT().Fetch(ctx, domain.KindPrayers, "en").Return([]domain.Record{})
	s.library.EXPECT().BuiltIn(domain.KindPrayers, "en").Return([]domain.Record{})
	s.expectStateUpdate(0)

	stats, err := s.importer.Import(ctx, domain.KindPrayers, "en")

	s.NoError(err)
	s.Equal(0, stats.Fetched)
}

func (s *ImporterTestSuite) TestImport_PublisherNil() {
	ctx := context.Background()

	importer := NewImporter(s.fetcher, s.library, s.records, s.state, s.txManager, nil, s.logger)

	records := []domain.Record{
		{Kind: domain.KindPrayers, Language: "en", Slug: "our-father", Title: "Our Father", UpdatedAt: time.Now()},
	}

	s.fetcher.EXPECT().Fetch(ctx, domain.KindPrayers, "en").Return(records)
	s.records.EXPECT().GetExistingBySlugs(ctx, domain.KindPrayers, "en", []string{"our-father"}).Return(map[string]time.Time{}, nil)
	s.expectTransaction()
	s.records.EXPECT().Upsert(ctx, &records[0]).Return("p-1", nil)
	s.expectStateUpdate(1)

	stats, err := importer.Import(ctx, domain.KindPrayers, "en")

	s.NoError(err)
	s.Equal(1, stats.New)
	s.Equal(0, stats.Published)
}

func (s *ImporterTestSuite) TestImport_PublishErrorCounted() {
	ctx := context.Background()

	records := []domain.Record{
		{Kind: domain.KindPrayers, Language: "en", Slug: "our-father", Title: "Our Father", UpdatedAt: time.Now()},
	}

	s.fetcher.EXPECT().Fetch(ctx, domain.KindPrayers, "en").Return(records)
	s.records.EXPECT().GetExistingBySlugs(ctx, domain.KindPrayers, "en", []string{"our-father"}).Return(map[string]time.Time{}, nil)
	s.expectTransaction()
	s.records.EXPECT().Upsert(ctx, &records[0]).Return("p-1", nil)
	s.publisher.EXPECT().Publish(ctx, &records[0], true).Return(errors.New("channel closed"))
	s.expectStateUpdate(1)

	stats, err := s.importer.Import(ctx, domain.KindPrayers, "en")

	s.NoError(err)
	s.Equal(1, stats.New)
	s.Equal(1, stats.Errors)
	s.Equal(0, stats.Published)
}

func (s *ImporterTestSuite) TestImportAll_ContinuesPastFailures() {
	ctx := context.Background()

	s.fetcher.EXPECT().Fetch(ctx, domain.KindPrayers, "en").Return([]domain.Record{
		{Kind: domain.KindPrayers, Language: "en", Slug: "our-father", Title: "Our Father"},
	})
	s.records.EXPECT().GetExistingBySlugs(ctx, domain.KindPrayers, "en", []string{"our-father"}).Return(nil, errors.New("db down"))

	s.fetcher.EXPECT().Fetch(ctx, domain.KindPrayers, "es").Return([]domain.Record{})
	s.library.EXPECT().BuiltIn(domain.KindPrayers, "es").Return([]domain.Record{})
	s.state.EXPECT().Get(gomock.Any(), domain.KindPrayers, "es").Return(&domain.ImportState{}, nil)
	s.state.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	all, err := s.importer.ImportAll(ctx, []domain.Kind{domain.KindPrayers}, []string{"en", "es"})

	s.Error(err)
	s.Contains(err.Error(), "import prayers/en")
	s.Require().Len(all, 1)
	s.Equal("es", all[0].Language)
}

func (s *ImporterTestSuite) TestImportAll_StopsWhenCanceled() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	all, err := s.importer.ImportAll(ctx, domain.Kinds, []string{"en"})

	s.ErrorIs(err, context.Canceled)
	s.Empty(all)
}
