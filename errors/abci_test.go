package errors

import (
	"io"
	"strings"
	"testing"
)

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err        error
		debug      bool
		wantCode   uint32
		wantLog    string
		wantPrefix bool
	}{
		"no error": {
			err: nil, wantCode: SuccessABCICode, wantLog: "",
		},
		"typed nil": {
			err: (*Error)(nil), wantCode: SuccessABCICode, wantLog: "",
		},
		"registered": {
			err: ErrUnauthorized, wantCode: 2, wantLog: "unauthorized",
		},
		"registered below wraps": {
			err:      Wrap(Wrapf(ErrNotFound, "transaction %d", 3), "execute"),
			wantCode: ErrNotFound.code,
			wantLog:  "execute: transaction 3: not found",
		},
		"registered in debug mode carries a stack trace": {
			err:        Wrap(ErrNotFound, "wallet"),
			debug:      true,
			wantCode:   ErrNotFound.code,
			wantLog:    "wallet: not found\n",
			wantPrefix: true,
		},
		"standard library error is hidden": {
			err: io.ErrUnexpectedEOF, wantCode: internalABCICode, wantLog: internalABCILog,
		},
		"wrapped standard library error is hidden": {
			err: Wrap(io.ErrUnexpectedEOF, "read genesis"), wantCode: internalABCICode, wantLog: internalABCILog,
		},
		"standard library error in debug mode": {
			err: io.ErrUnexpectedEOF, debug: true, wantCode: internalABCICode, wantLog: "unexpected EOF",
		},
		"wrapped standard library error in debug mode": {
			err:        Wrap(io.ErrUnexpectedEOF, "read genesis"),
			debug:      true,
			wantCode:   internalABCICode,
			wantLog:    "read genesis: unexpected EOF\n",
			wantPrefix: true,
		},
		"own code": {
			err: walletErr{}, wantCode: 4242, wantLog: "wallet locked",
		},
		"own code in debug mode": {
			err: walletErr{}, debug: true, wantCode: 4242, wantLog: "wallet locked",
		},
		"group reports the first code": {
			err:      Append(ErrEmpty, ErrNotFound),
			wantCode: ErrEmpty.code,
			wantLog:  "value is empty; not found",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want code %d, got %d", tc.wantCode, code)
			}
			if tc.wantPrefix {
				if !strings.HasPrefix(log, tc.wantLog) {
					t.Errorf("want log starting with %q, got %q", tc.wantLog, log)
				}
			} else if log != tc.wantLog {
				t.Errorf("want log %q, got %q", tc.wantLog, log)
			}
		})
	}
}

// walletErr carries its own code without being registered.
type walletErr struct{}

func (walletErr) ABCICode() uint32 { return 4242 }

func (walletErr) Error() string { return "wallet locked" }
