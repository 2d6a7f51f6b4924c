package homebox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractList(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		priority []string
		wantIDs  []string
		wantOK   bool
	}{
		{"bare array", `[{"id":"a"},{"id":"b"}]`, nil, []string{"a", "b"}, true},
		{"priority key", `{"other":[{"id":"x"}],"items":[{"id":"a"}]}`, []string{"items", "data"}, []string{"a"}, true},
		{"second priority key", `{"data":[{"id":"d"}],"total":1}`, []string{"items", "data"}, []string{"d"}, true},
		{"first array in document order", `{"total":2,"zeta":[{"id":"z"}],"alpha":[{"id":"a"}]}`, []string{"items"}, []string{"z"}, true},
		{"priority key that is not an array", `{"data":{"id":"x"},"list":[{"id":"l"}]}`, []string{"data"}, []string{"l"}, true},
		{"non-object elements skipped", `[{"id":"a"},"b",3,null,{"id":"c"}]`, nil, []string{"a", "c"}, true},
		{"empty array", `{"items":[]}`, []string{"items"}, []string{}, true},
		{"no list", `{"unexpected":"shape"}`, []string{"items", "data"}, nil, false},
		{"scalar", `"hello"`, nil, nil, false},
		{"not json", `<html>`, nil, nil, false},
		{"empty body", ``, nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, ok := ExtractList([]byte(tt.body), tt.priority...)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Nil(t, list)
				return
			}

			ids := make([]string, 0, len(list))
			for _, rec := range list {
				ids = append(ids, rec.String("id"))
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}
