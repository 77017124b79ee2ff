package quorum_test

import (
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ownerHex = "00112233445566778899aabbccddeeff00112233"

func owner(t testing.TB) quorum.Address {
	raw, err := hex.DecodeString(ownerHex)
	require.NoError(t, err)
	return quorum.Address(raw)
}

func TestParseAddress(t *testing.T) {
	bech, err := owner(t).Bech32()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(bech, quorum.Bech32Prefix+"1"), bech)

	tampered := bech[:len(bech)-1] + "q"
	if strings.HasSuffix(bech, "q") {
		tampered = bech[:len(bech)-1] + "p"
	}
	wallet := quorum.NewCondition("multisig", "wallet", []byte{0, 0, 0, 0, 0, 0, 0, 1})

	cases := map[string]struct {
		enc     string
		want    quorum.Address
		wantErr *errors.Error
	}{
		"plain hex":              {enc: ownerHex, want: owner(t)},
		"upper case hex":         {enc: strings.ToUpper(ownerHex), want: owner(t)},
		"hex prefix":             {enc: "hex:" + ownerHex, want: owner(t)},
		"0x prefix":              {enc: "0x" + ownerHex, want: owner(t)},
		"bech32":                 {enc: "bech32:" + bech, want: owner(t)},
		"bech32 foreign prefix":  {enc: "bech32:tiov1w3jhxapdwpshjmr0v9jqymqq4y", wantErr: errors.ErrInput},
		"bech32 bad checksum":    {enc: "bech32:" + tampered, wantErr: errors.ErrInput},
		"condition":              {enc: "cond:multisig/wallet/0000000000000001", want: wallet.Address()},
		"condition without type": {enc: "cond:multisig/0000000000000001", wantErr: errors.ErrInput},
		"condition bad data":     {enc: "cond:multisig/wallet/xyz", wantErr: errors.ErrInput},
		"short hex":              {enc: "0x0011223344", wantErr: errors.ErrInput},
		"not hex":                {enc: "0xowner", wantErr: errors.ErrInput},
		"unknown format":         {enc: "base58:abc", wantErr: errors.ErrType},
		"empty":                  {enc: "", want: nil},
		"empty hex":              {enc: "hex:", want: nil},
		"empty condition":        {enc: "cond:", want: nil},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := quorum.ParseAddress(tc.enc)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if err == nil {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestAddressJSON(t *testing.T) {
	addr := owner(t)

	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+strings.ToUpper(ownerHex)+`"`, string(raw))

	var back quorum.Address
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, addr, back)

	var got struct {
		Owners []quorum.Address `json:"owners"`
	}
	doc := `{"owners": ["0x` + ownerHex + `", "cond:multisig/wallet/01", ""]}`
	require.NoError(t, json.Unmarshal([]byte(doc), &got))
	assert.Equal(t, []quorum.Address{
		addr,
		quorum.NewCondition("multisig", "wallet", []byte{1}).Address(),
		nil,
	}, got.Owners)

	err = json.Unmarshal([]byte(`42`), &back)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestAddressPrinting(t *testing.T) {
	Convey("Given an owner address", t, func() {
		addr := owner(t)

		Convey("String is upper case hex", func() {
			So(addr.String(), ShouldEqual, strings.ToUpper(ownerHex))
		})

		Convey("Bech32 form parses back to the same address", func() {
			bech, err := addr.Bech32()
			So(err, ShouldBeNil)
			back, err := quorum.ParseAddress("bech32:" + bech)
			So(err, ShouldBeNil)
			So(back.Equals(addr), ShouldBeTrue)
		})

		Convey("Clone does not share memory", func() {
			clone := addr.Clone()
			clone[0] = 0xff
			So(addr[0], ShouldEqual, byte(0x00))
		})
	})

	Convey("A missing address prints as (nil)", t, func() {
		So(quorum.Address(nil).String(), ShouldEqual, "(nil)")
		So(quorum.Address(nil).Clone(), ShouldBeNil)
	})

	Convey("A condition keeps extension and type readable", t, func() {
		cond := quorum.NewCondition("multisig", "wallet", []byte{0xca, 0xfe})
		So(cond.String(), ShouldEqual, "multisig/wallet/CAFE")
		So(quorum.Condition("x/y").String(), ShouldStartWith, "Invalid Condition")
	})
}

func TestAddressValidate(t *testing.T) {
	cases := map[string]struct {
		addr    quorum.Address
		wantErr *errors.Error
	}{
		"valid":     {addr: quorum.NewAddress([]byte("alice"))},
		"nil":       {addr: nil, wantErr: errors.ErrInput},
		"too short": {addr: quorum.Address{1, 2, 3}, wantErr: errors.ErrInput},
		"too long":  {addr: make(quorum.Address, quorum.AddressLength+1), wantErr: errors.ErrInput},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if err := tc.addr.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestAddressIsZero(t *testing.T) {
	cases := map[string]struct {
		addr quorum.Address
		want bool
	}{
		"nil":       {addr: nil, want: true},
		"all zeros": {addr: make(quorum.Address, quorum.AddressLength), want: true},
		"hashed":    {addr: quorum.NewAddress([]byte("bob")), want: false},
		"last byte": {addr: append(make(quorum.Address, quorum.AddressLength-1), 1), want: false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.addr.IsZero())
		})
	}
}

func TestConditionJSON(t *testing.T) {
	cases := map[string]struct {
		json    string
		want    quorum.Condition
		wantErr *errors.Error
	}{
		"condition":      {json: `"multisig/wallet/CAFE"`, want: quorum.NewCondition("multisig", "wallet", []byte{0xca, 0xfe})},
		"missing type":   {json: `"multisig/CAFE"`, wantErr: errors.ErrInput},
		"malformed data": {json: `"multisig/wallet/zz"`, wantErr: errors.ErrInput},
		"empty":          {json: `""`, want: nil},
		"not a string":   {json: `7`, wantErr: errors.ErrInput},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var got quorum.Condition
			err := json.Unmarshal([]byte(tc.json), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if err != nil {
				return
			}
			assert.True(t, got.Equals(tc.want))

			raw, err := json.Marshal(got)
			require.NoError(t, err)
			assert.Equal(t, tc.json, string(raw))
		})
	}
}
