package form

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Validate(t *testing.T) {
	tests := []struct {
		name string
		in   Login
		want FieldErrors
	}{
		{"valid", Login{Email: "ada@site.co", Password: "secret"}, nil},
		{"trims email", Login{Email: "  ada@site.co ", Password: "secret"}, nil},
		{"both empty", Login{}, FieldErrors{
			FieldEmail:    "email is required",
			FieldPassword: "password is required",
		}},
		{"bad email", Login{Email: "ada@", Password: "secret"}, FieldErrors{
			FieldEmail: "invalid email address",
		}},
		{"display name rejected", Login{Email: "Ada <ada@site.co>", Password: "secret"}, FieldErrors{
			FieldEmail: "invalid email address",
		}},
		{"no tld", Login{Email: "ada@localhost", Password: "secret"}, FieldErrors{
			FieldEmail: "invalid email address",
		}},
		{"short password", Login{Email: "ada@site.co", Password: "12345"}, FieldErrors{
			FieldPassword: "must be at least 6 characters",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.in.Validate()
			assert.Equal(t, tt.want == nil, r.OK())
			assert.Equal(t, tt.want, r.Errors())
		})
	}
}

func TestTask_Validate(t *testing.T) {
	r := Task{Title: "Paint wall", Description: "Two coats"}.Validate()
	assert.True(t, r.OK())
	assert.NoError(t, r.Err())

	r = Task{Title: "   ", Description: ""}.Validate()
	require.False(t, r.OK())
	assert.Equal(t, FieldErrors{
		FieldTitle:       "task title is required",
		FieldDescription: "task description is required",
	}, r.Errors())

	r = Task{Title: strings.Repeat("x", TitleMaxLen+1), Description: "d"}.Validate()
	assert.Equal(t, "must be at most 120 characters", r.Errors()[FieldTitle])

	r = Task{Title: strings.Repeat("é", TitleMaxLen), Description: "d"}.Validate()
	assert.True(t, r.OK(), "length counts characters, not bytes")
}

func TestTask_ToTask(t *testing.T) {
	got := Task{Title: " Paint ", Description: " coats ", Category: " Finishing ", PlanID: "p1", PersonID: "u2"}.
		ToTask("proj", "u1")
	assert.Equal(t, "proj", got.ProjectID)
	assert.Equal(t, "Paint", got.Title)
	assert.Equal(t, "coats", got.Description)
	assert.Equal(t, "Finishing", got.Category)
	assert.Equal(t, "p1", got.PlanID)
	assert.Equal(t, "u2", got.PersonID)
	assert.Equal(t, "u1", got.CreatorID)
	assert.Empty(t, got.ID)
}

func TestFieldErrors_ErrorIsSorted(t *testing.T) {
	err := Login{}.Validate().Err()
	require.Error(t, err)
	assert.Equal(t, "email: email is required; password: password is required", err.Error())
}

func TestField_FirstRuleWins(t *testing.T) {
	v := Field(Required("needed"), MinLen(3))
	assert.EqualError(t, v(""), "needed")
	assert.EqualError(t, v("ab"), "must be at least 3 characters")
	assert.NoError(t, v("abc"))
}
