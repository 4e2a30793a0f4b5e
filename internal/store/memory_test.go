package store

import (
	"context"
	"testing"

	"github.com/harentsoaR/hospital-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemoryRecordsFilter(t *testing.T) {
	notices := NewMemoryRecords[models.Notice]()
	ctx := context.Background()

	for _, cat := range []string{"G", "D", "S", "G"} {
		require.NoError(t, notices.Insert(ctx, &models.Notice{ID: primitive.NewObjectID(), Category: cat, Heading: "h"}))
	}

	general, err := notices.Find(ctx, Match{"category": "G"})
	require.NoError(t, err)
	assert.Len(t, general, 2)

	all, err := notices.Find(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	none, err := notices.Find(ctx, Match{"category": "P"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMemoryUsersInsertRejectsSameEmail(t *testing.T) {
	users := NewMemoryUsers()
	ctx := context.Background()

	require.NoError(t, users.Insert(ctx, &models.User{Email: "a@b.c", Role: models.RolePatient}))
	assert.ErrorIs(t, users.Insert(ctx, &models.User{Email: "a@b.c", Role: models.RoleDoctor}), ErrDuplicateEmail)
}

func TestPushEntryCreatesMissingList(t *testing.T) {
	doc, err := bson.Marshal(bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "role", Value: "S"}})
	require.NoError(t, err)

	out, err := pushEntry(doc, "staffVisits", models.KeyOf("visitTime", "09:00"), bson.M{"visitTime": "09:00"})
	require.NoError(t, err)

	values, err := arrayValues("staffVisits", out.Lookup("staffVisits"))
	require.NoError(t, err)
	assert.Len(t, values, 1)

	_, err = pushEntry(out, "staffVisits", models.KeyOf("visitTime", "09:00"), bson.M{"visitTime": "09:00"})
	assert.ErrorIs(t, err, ErrDuplicateEntry)
}

func TestProjectKeepsIDAndFields(t *testing.T) {
	doc, err := bson.Marshal(bson.D{{Key: "_id", Value: "x"}, {Key: "fullName", Value: "A"}, {Key: "email", Value: "a@b.c"}})
	require.NoError(t, err)

	out, err := project(doc, []string{"fullName"})
	require.NoError(t, err)
	assert.Equal(t, "A", out.Lookup("fullName").StringValue())
	assert.Equal(t, "x", out.Lookup("_id").StringValue())
	_, err = out.LookupErr("email")
	assert.Error(t, err)
}
