package assert

import (
	"fmt"
	"testing"

	"github.com/iov-one/quorum/errors"
)

// recorder counts failures instead of stopping the test.
type recorder struct {
	testing.TB
	failures int
}

func (r *recorder) Fatal(args ...interface{})                 { r.failures++ }
func (r *recorder) Fatalf(format string, args ...interface{}) { r.failures++ }
func (r *recorder) Log(args ...interface{})                   {}
func (r *recorder) Logf(format string, args ...interface{})   {}

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		want, got error
		wantFail  bool
	}{
		"same error":         {want: errors.ErrEmpty, got: errors.ErrEmpty},
		"both nil":           {want: nil, got: nil},
		"wrapped":            {want: errors.ErrEmpty, got: errors.Wrap(errors.ErrEmpty, "owner")},
		"nil is not an err":  {want: nil, got: errors.ErrEmpty, wantFail: true},
		"different error":    {want: errors.ErrEmpty, got: errors.ErrInput, wantFail: true},
		"unregistered error": {want: fmt.Errorf("a"), got: fmt.Errorf("a"), wantFail: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			r := &recorder{TB: t}
			IsErr(r, tc.want, tc.got)
			if failed := r.failures > 0; failed != tc.wantFail {
				t.Fatalf("want failure %v, got %d failures", tc.wantFail, r.failures)
			}
		})
	}
}

func TestFieldError(t *testing.T) {
	cases := map[string]struct {
		err      error
		field    string
		want     *errors.Error
		wantFail bool
	}{
		"single match": {
			err:   errors.Field("Owner", errors.ErrEmpty, "required"),
			field: "Owner",
			want:  errors.ErrEmpty,
		},
		"wrong error": {
			err:      errors.Field("Owner", errors.ErrEmpty, "required"),
			field:    "Owner",
			want:     errors.ErrInput,
			wantFail: true,
		},
		"missing field": {
			err:      errors.Field("Owner", errors.ErrEmpty, "required"),
			field:    "Required",
			want:     errors.ErrEmpty,
			wantFail: true,
		},
		"no error expected and none found": {
			err:   errors.Field("Owner", errors.ErrEmpty, "required"),
			field: "Required",
			want:  nil,
		},
		"no error expected but found": {
			err:      errors.Field("Owner", errors.ErrEmpty, "required"),
			field:    "Owner",
			want:     nil,
			wantFail: true,
		},
		"more than one match": {
			err: errors.Append(
				errors.Field("Owner", errors.ErrEmpty, "a"),
				errors.Field("Owner", errors.ErrEmpty, "b"),
			),
			field:    "Owner",
			want:     errors.ErrEmpty,
			wantFail: true,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			r := &recorder{TB: t}
			FieldError(r, tc.err, tc.field, tc.want)
			if failed := r.failures > 0; failed != tc.wantFail {
				t.Fatalf("want failure %v, got %d failures", tc.wantFail, r.failures)
			}
		})
	}
}

func TestNil(t *testing.T) {
	var nilPtr *int
	var nilErr *errors.Error
	cases := map[string]struct {
		value    interface{}
		wantFail bool
	}{
		"nil":           {value: nil},
		"nil pointer":   {value: nilPtr},
		"nil error":     {value: nilErr},
		"nil slice":     {value: []byte(nil)},
		"zero integer":  {value: 0, wantFail: true},
		"empty string":  {value: "", wantFail: true},
		"non nil error": {value: errors.ErrEmpty, wantFail: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			r := &recorder{TB: t}
			Nil(r, tc.value)
			if failed := r.failures > 0; failed != tc.wantFail {
				t.Fatalf("want failure %v, got %d failures", tc.wantFail, r.failures)
			}
		})
	}
}

func TestPanics(t *testing.T) {
	r := &recorder{TB: t}
	Panics(r, func() { panic("boom") })
	Panics(r, func() {})
	if r.failures != 1 {
		t.Fatalf("want one failure, got %d", r.failures)
	}
}
