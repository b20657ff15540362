package weave

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/multivault/errors"
	"github.com/iov-one/multivault/weavetest/assert"
)

func TestReadOptions(t *testing.T) {
	type conf struct {
		Key int `json:"key"`
	}

	cases := map[string]struct {
		json    string
		wantErr *errors.Error
		want    conf
	}{
		"happy path": {
			json: `{"conf": {"key": 7}}`,
			want: conf{Key: 7},
		},
		"missing key is a noop": {
			json: `{"other": {"key": 7}}`,
		},
		"null value is a noop": {
			json: `{"conf": null}`,
		},
		"wrong value": {
			json:    `{"conf": {"key": "seven"}}`,
			wantErr: errors.ErrInput,
		},
		"wrong body": {
			json:    `{"conf": "adasda"}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var o Options
			assert.Nil(t, json.Unmarshal([]byte(tc.json), &o))

			var got conf
			err := o.ReadOptions("conf", &got)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
