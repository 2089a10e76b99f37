package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/easy-style/internal/account"
	"github.com/Veraticus/easy-style/internal/common"
	"github.com/Veraticus/easy-style/internal/history"
	"github.com/Veraticus/easy-style/internal/model"
	"github.com/Veraticus/easy-style/internal/testutil"
)

func TestOpenHistoryLoadsSavedResult(t *testing.T) {
	ctx := context.Background()
	histories := history.NewService(testutil.SetupTestDB(t), history.WithLogger(common.DiscardLogger()))
	kim := account.Principal{Email: "kim@example.com"}

	result := *testutil.SampleResult()
	result.ImageMIMEType = "image/jpeg"
	saved, err := histories.Save(ctx, kim, "출근룩", model.Image{Data: []byte("j"), MIMEType: "image/jpeg"}, result)
	require.NoError(t, err)

	session, item, err := openHistory(ctx, histories, kim, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "출근룩", item.Prompt)

	got, ok := session.Result()
	require.True(t, ok)
	assert.Equal(t, result, got)
	assert.Equal(t, "data:image/jpeg;base64,"+result.ImageBase64, got.StyledDataURL())
	assert.False(t, session.Running())
	assert.Equal(t, len(result.Products), session.Selection().Len())
	assert.Equal(t, result.Products, session.SelectedProducts())

	_, err = session.Toggle(result.Products[0].ProductURL)
	require.NoError(t, err)
	assert.Len(t, session.SelectedProducts(), len(result.Products)-1)

	_, err = session.Begin()
	assert.NoError(t, err)
}

func TestOpenHistoryIsScopedToOwner(t *testing.T) {
	ctx := context.Background()
	histories := history.NewService(testutil.SetupTestDB(t), history.WithLogger(common.DiscardLogger()))
	kim := account.Principal{Email: "kim@example.com"}

	saved, err := histories.Save(ctx, kim, "출근룩", model.Image{Data: []byte("j"), MIMEType: "image/jpeg"}, *testutil.SampleResult())
	require.NoError(t, err)

	_, _, err = openHistory(ctx, histories, account.Principal{Email: "park@example.com"}, saved.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, _, err = openHistory(ctx, histories, kim, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
