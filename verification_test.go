package canvas

import (
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
)

func TestVerificationVariants(t *testing.T) {
	granted := Authorized("user")
	assert.True(t, granted.Granted())
	assert.Equal(t, "user", granted.User())

	denied := Denied("nope")
	assert.False(t, denied.Granted())
	assert.Equal(t, "nope", denied.Reason())
	assert.NoError(t, denied.Err())

	failed := Failed(errors.New("down"))
	assert.False(t, failed.Granted())
	assert.EqualError(t, failed.Err(), "down")

	assert.Error(t, Failed(nil).Err())
	assert.False(t, Authorized(nil).Granted())

	var nilMap map[string]any
	assert.False(t, Authorized(nilMap).Granted())
	assert.True(t, Authorized(0).Granted())
}

func TestOutcomeHelpers(t *testing.T) {
	assert.Equal(t, "not_applicable", OutcomeNotApplicable.String())
	assert.Equal(t, "authenticated", OutcomeAuthenticated.String())
	assert.Equal(t, "rejected", OutcomeRejected.String())
	assert.Equal(t, "unknown", OutcomeKind(42).String())

	empty := Outcome{}
	assert.Empty(t, empty.Reason())
	assert.Empty(t, empty.TextCode())
	assert.Equal(t, goerrors.CodeForbidden, empty.StatusCode())
	assert.False(t, empty.IsAuthenticated())

	out := rejected(ErrNotAuthorized.Clone())
	assert.Equal(t, DefaultDenyMessage, out.Reason())
	assert.Equal(t, TextCodeNotAuthorized, out.TextCode())
	assert.Equal(t, goerrors.CodeForbidden, out.StatusCode())
}

func TestProfileAccessors(t *testing.T) {
	profile := testProfile()
	assert.Equal(t, testOrg, profile.OrganizationID())
	assert.Equal(t, testUser, profile.UserID())
	assert.Equal(t, "Assaf Arkin", profile.DisplayName())
	assert.Equal(t, "assaf@broadly.com", profile.Email())
	assert.Contains(t, profile.ID(), "/id/"+testOrg+"/"+testUser)

	var missing Profile
	assert.Empty(t, missing.Email())

	numeric := Profile{"user_id": float64(42)}
	assert.Equal(t, "42", numeric.UserID())
}
