package errors

import (
	"reflect"
	"testing"
)

func TestFieldErrors(t *testing.T) {
	// Errors are created once so that results can be compared with
	// DeepEqual.
	var (
		emptyOwner    = Field("Owner", ErrEmpty, "owner is required")
		invalidOwner  = Field("Owner", ErrInput, "not an address")
		zeroRequired  = Field("Required", ErrInput, "must be greater than zero")
		walletErr     = Field("Wallet", Append(invalidOwner, zeroRequired), "invalid wallet")
		nestedOwner   = Field("Owner", emptyOwner, "outer")
		nestedFields  = Field("Wallet", Field("Owners", invalidOwner, "list"), "wallet")
		wrappedGroup  = Wrap(Wrap(walletErr, "inner"), "outer")
		wrappedFields = Wrap(Append(Wrap(emptyOwner, "a"), Wrap(invalidOwner, "b"), Wrap(zeroRequired, "c")), "outer")
	)

	cases := map[string]struct {
		err   error
		field string
		want  []error
	}{
		"nil error": {
			err:   nil,
			field: "Owner",
			want:  nil,
		},
		"not a field error": {
			err:   ErrUnauthorized,
			field: "Owner",
			want:  nil,
		},
		"different field name": {
			err:   zeroRequired,
			field: "Owner",
			want:  nil,
		},
		"single match": {
			err:   emptyOwner,
			field: "Owner",
			want:  []error{emptyOwner},
		},
		"all matches of a group": {
			err:   Append(emptyOwner, zeroRequired, invalidOwner),
			field: "Owner",
			want:  []error{emptyOwner, invalidOwner},
		},
		"field holding a group": {
			err:   walletErr,
			field: "Wallet",
			want:  []error{walletErr},
		},
		"match inside of a field group": {
			err:   walletErr,
			field: "Required",
			want:  []error{zeroRequired},
		},
		"match inside of a wrapped group": {
			err:   wrappedGroup,
			field: "Owner",
			want:  []error{invalidOwner},
		},
		"no match inside of a wrapped group": {
			err:   wrappedGroup,
			field: "Name",
			want:  nil,
		},
		"outermost field with the same name": {
			err:   nestedOwner,
			field: "Owner",
			want:  []error{nestedOwner},
		},
		"innermost of nested fields": {
			err:   nestedFields,
			field: "Owner",
			want:  []error{invalidOwner},
		},
		"wrapped group with many matches": {
			err:   wrappedFields,
			field: "Owner",
			want:  []error{emptyOwner, invalidOwner},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := FieldErrors(tc.err, tc.field)
			if !reflect.DeepEqual(tc.want, got) {
				t.Logf("want: %#v", tc.want)
				t.Logf(" got: %#v", got)
				t.Fatal("unexpected result")
			}
		})
	}
}

func TestFieldIs(t *testing.T) {
	err := Field("Recipient", ErrInput, "invalid %s", "address")
	if !ErrInput.Is(err) {
		t.Fatal("field error must match its cause")
	}
	if got, want := err.Error(), `field "Recipient": invalid address: invalid input`; got != want {
		t.Fatalf("want %q message, got %q", want, got)
	}
	if Field("Recipient", nil, "not used") != nil {
		t.Fatal("nil error must not create a field error")
	}
}
