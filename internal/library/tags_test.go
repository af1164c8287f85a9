package library

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmaryam28/Propel-ATS-sub003/internal/db"
)

func TestAddTags(t *testing.T) {
	svc, _, _ := newTestService()
	userID := uuid.New()
	resp := createTestResponse(t, svc, userID)

	updated, err := svc.AddTags(context.Background(), userID, resp.ID, []db.TagInput{
		{TagType: "skill", TagValue: "python"},
		{TagType: "skill", TagValue: "leadership"},
	})
	require.NoError(t, err)
	require.Len(t, updated.Tags, 2)
	assert.Equal(t, "python", updated.Tags[0].TagValue)
}

func TestAddTags_DuplicatesAllowed(t *testing.T) {
	svc, _, _ := newTestService()
	userID := uuid.New()
	resp := createTestResponse(t, svc, userID)

	tags := []db.TagInput{{TagType: "skill", TagValue: "python"}}
	_, err := svc.AddTags(context.Background(), userID, resp.ID, tags)
	require.NoError(t, err)
	updated, err := svc.AddTags(context.Background(), userID, resp.ID, tags)
	require.NoError(t, err)

	assert.Len(t, updated.Tags, 2)
}

func TestAddTags_EmptyValueRejected(t *testing.T) {
	svc, _, _ := newTestService()
	userID := uuid.New()
	resp := createTestResponse(t, svc, userID)

	_, err := svc.AddTags(context.Background(), userID, resp.ID, []db.TagInput{
		{TagType: "skill", TagValue: "  "},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "tag_value", verr.Field)
}

func TestRemoveTags_ScopedToResponse(t *testing.T) {
	svc, _, _ := newTestService()
	userID := uuid.New()
	respA := createTestResponse(t, svc, userID)
	respB := createTestResponse(t, svc, userID)

	withTag, err := svc.AddTags(context.Background(), userID, respA.ID, []db.TagInput{
		{TagType: "skill", TagValue: "sql"},
	})
	require.NoError(t, err)
	tagID := withTag.Tags[0].ID

	// removing respA's tag via respB must not touch it
	_, err = svc.RemoveTags(context.Background(), userID, respB.ID, []uuid.UUID{tagID})
	require.NoError(t, err)
	stillThere, err := svc.Get(context.Background(), userID, respA.ID)
	require.NoError(t, err)
	assert.Len(t, stillThere.Tags, 1)

	// removing through the owning response works
	removed, err := svc.RemoveTags(context.Background(), userID, respA.ID, []uuid.UUID{tagID})
	require.NoError(t, err)
	assert.Empty(t, removed.Tags)
}

func TestSearchByTags(t *testing.T) {
	svc, _, _ := newTestService()
	userID := uuid.New()
	tagged := createTestResponse(t, svc, userID)
	createTestResponse(t, svc, userID) // untagged

	_, err := svc.AddTags(context.Background(), userID, tagged.ID, []db.TagInput{
		{TagType: "skill", TagValue: "kubernetes"},
	})
	require.NoError(t, err)

	found, err := svc.SearchByTags(context.Background(), userID, []string{"kubernetes", "terraform"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, tagged.ID, found[0].ID)
}
