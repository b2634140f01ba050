package itemstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-items/internal/entities/items"
	"github.com/KirkDiggler/rpg-items/internal/errors"
	"github.com/KirkDiggler/rpg-items/internal/repositories/itemstore"
	storagemock "github.com/KirkDiggler/rpg-items/internal/storage/mock"
	"github.com/KirkDiggler/rpg-items/internal/testutils"
	"github.com/KirkDiggler/rpg-items/internal/testutils/mocks"
)

type ItemStoreTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mockStore *storagemock.MockStore
	repo      itemstore.Repository
	ctx       context.Context
}

func TestItemStoreSuite(t *testing.T) {
	suite.Run(t, new(ItemStoreTestSuite))
}

func (s *ItemStoreTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockStore = storagemock.NewMockStore(s.ctrl)
	s.ctx = context.Background()

	repo, err := itemstore.New(&itemstore.Config{Store: s.mockStore})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *ItemStoreTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ItemStoreTestSuite) TestNew() {
	testCases := []struct {
		name    string
		config  *itemstore.Config
		wantErr bool
		errMsg  string
	}{
		{
			name:   "success with valid config",
			config: &itemstore.Config{Store: s.mockStore},
		},
		{
			name:    "error with nil config",
			config:  nil,
			wantErr: true,
			errMsg:  "config cannot be nil",
		},
		{
			name:    "error with nil store",
			config:  &itemstore.Config{},
			wantErr: true,
			errMsg:  "store cannot be nil",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			repo, err := itemstore.New(tc.config)

			if tc.wantErr {
				s.Error(err)
				s.Contains(err.Error(), tc.errMsg)
				s.Nil(repo)
			} else {
				s.NoError(err)
				s.NotNil(repo)
			}
		})
	}
}

func (s *ItemStoreTestSuite) TestLoad() {
	testCases := []struct {
		name      string
		setupMock func()
		wantCode  errors.Code
		validate  func(output *itemstore.LoadOutput)
	}{
		{
			name: "nothing persisted yet",
			setupMock: func() {
				mocks.ExpectStoreGet(s.ctx, s.mockStore, itemstore.StorageKey, "")
			},
			validate: func(output *itemstore.LoadOutput) {
				s.False(output.Found)
				s.Equal(0, output.Container.Len())
				s.Equal(0, output.Report.MigratedCount())
			},
		},
		{
			name: "legacy data is migrated",
			setupMock: func() {
				mocks.ExpectStoreGet(s.ctx, s.mockStore, itemstore.StorageKey, testutils.LegacyEnvelope)
			},
			validate: func(output *itemstore.LoadOutput) {
				s.True(output.Found)
				item, ok := output.Container.Get("trap")
				s.Require().True(ok)
				s.Equal(items.CurrentVersion, item.Version)
				s.Equal(items.Loot{"rabbit", "rabbit"}, *item.AsBait)
				s.Nil(item.AsChest)
				s.Equal(1, output.Report.Migrated[items.VersionV0])
			},
		},
		{
			name: "unsupported version",
			setupMock: func() {
				mocks.ExpectStoreGet(s.ctx, s.mockStore, itemstore.StorageKey, testutils.FutureEnvelope)
			},
			wantCode: errors.CodeUnsupportedSchemaVersion,
		},
		{
			name: "malformed data",
			setupMock: func() {
				mocks.ExpectStoreGet(s.ctx, s.mockStore, itemstore.StorageKey, `{"x":1}`)
			},
			wantCode: errors.CodeMalformedEncoding,
		},
		{
			name: "storage failure",
			setupMock: func() {
				s.mockStore.EXPECT().
					Get(s.ctx, itemstore.StorageKey).
					Return("", false, errors.Unavailable("redis down"))
			},
			wantCode: errors.CodeUnavailable,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			tc.setupMock()

			output, err := s.repo.Load(s.ctx, itemstore.LoadInput{})

			if tc.wantCode != "" {
				s.Error(err)
				s.Equal(tc.wantCode, errors.GetCode(err))
				s.Nil(output)
			} else {
				s.NoError(err)
				s.Require().NotNil(output)
				tc.validate(output)
			}
		})
	}
}

func (s *ItemStoreTestSuite) TestSave() {
	container := testutils.CreateTestContainer("a", "b")

	var written string
	mocks.ExpectStoreSet(s.ctx, s.mockStore, itemstore.StorageKey, &written)

	output, err := s.repo.Save(s.ctx, itemstore.SaveInput{Container: container})
	s.Require().NoError(err)
	s.Equal(len(written), output.Size)

	expected, err := items.Save(container)
	s.Require().NoError(err)
	s.Equal(expected, written)
}

func (s *ItemStoreTestSuite) TestSaveStorageFailure() {
	s.mockStore.EXPECT().
		Set(s.ctx, itemstore.StorageKey, gomock.Any()).
		Return(errors.Internal("disk full"))

	output, err := s.repo.Save(s.ctx, itemstore.SaveInput{Container: items.NewContainer()})

	s.Error(err)
	s.Contains(err.Error(), "failed to write items")
	s.Nil(output)
}
