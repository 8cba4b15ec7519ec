package catalog_test

import (
	"context"
	"errors"
	"testing"

	"bookconnect/internal/catalog"
	"bookconnect/internal/catalog/mocks"
	"bookconnect/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Open(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockSource := mocks.NewMockSource(ctrl)

	t.Run("success", func(t *testing.T) {
		mockSource.EXPECT().Load(gomock.Any()).Return(testutil.Dataset(100), nil)

		store, err := catalog.NewService(mockSource, 36).Open(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 100, store.Matches())
		assert.Len(t, store.CurrentSlice(), 36)
	})

	t.Run("source error", func(t *testing.T) {
		mockSource.EXPECT().Load(gomock.Any()).Return(catalog.Dataset{}, errors.New("db down"))

		store, err := catalog.NewService(mockSource, 36).Open(context.Background())

		assert.Error(t, err)
		assert.Nil(t, store)
	})

	t.Run("invalid page size", func(t *testing.T) {
		mockSource.EXPECT().Load(gomock.Any()).Return(testutil.Dataset(5), nil)

		_, err := catalog.NewService(mockSource, 0).Open(context.Background())

		assert.Error(t, err)
	})
}
