package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"valid", "Sunlit7Pages", true},
		{"too short", "Ab1cdef", false},
		{"no uppercase", "sunlit7pages", false},
		{"no lowercase", "SUNLIT7PAGES", false},
		{"no digit", "SunlitPages", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		valid    bool
	}{
		{"valid", "book_worm-42", true},
		{"too short", "ab", false},
		{"bad characters", "book worm!", false},
		{"leading underscore", "_bookworm", false},
		{"trailing hyphen", "bookworm-", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("reader@example.com"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail(""))
}

func TestValidateClubName(t *testing.T) {
	assert.NoError(t, ValidateClubName("Mystery Lovers"))
	assert.NoError(t, ValidateClubName("  padded name  "))
	assert.Error(t, ValidateClubName("ab"))
	assert.Error(t, ValidateClubName("admin"))
	assert.Error(t, ValidateClubName("Posts"))
}
