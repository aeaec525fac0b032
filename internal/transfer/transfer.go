// Package transfer encodes an account's persisted state for backup and
// applies a backup back, tolerating malformed fields.
package transfer

import (
	"context"
	"fmt"
	"time"
	"unfollower/pkg/domain"
	"unfollower/pkg/logger"
	"unfollower/pkg/serrors"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// TimestampLayout is the export timestamp format.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Payload field names.
const (
	FieldAccount    = "account"
	FieldTimestamp  = "timestamp"
	FieldOptions    = "options"
	FieldExceptions = "exceptions"
	FieldUnfollowed = "unfollowed"

	// Names used by backups of the browser userscript.
	legacyTimestamp     = "when"
	legacyBlockReFollow = "disableFollowOnUnfollowed"
)

// Source is what Export reads. *state.State implements it.
type Source interface {
	Account() string
	Options() domain.Options
	Exceptions() domain.Set
	Unfollowed() domain.Set
}

// Target is what Import writes. *state.State implements it.
type Target interface {
	Source
	ReplaceExceptions(ctx context.Context, users domain.Set) error
	ReplaceUnfollowed(ctx context.Context, users domain.Set) error
	SaveOptions(ctx context.Context, opts domain.Options) (domain.Options, error)
}

// FileName is the suggested name of a backup of account taken at now.
func FileName(account string, now time.Time) string {
	return fmt.Sprintf("letterboxd-unfollower-%s-%s.json", account, now.UTC().Format(time.DateOnly))
}

// Export encodes the state of src.
func Export(src Source, now time.Time) []byte {
	opts := src.Options()

	var e jx.Encoder
	e.SetIdent(2)
	e.ObjStart()
	e.FieldStart(FieldAccount)
	e.Str(src.Account())
	e.FieldStart(FieldTimestamp)
	e.Str(now.UTC().Format(TimestampLayout))
	e.FieldStart(FieldOptions)
	e.ObjStart()
	e.FieldStart("blockReFollow")
	e.Bool(opts.BlockReFollow)
	e.FieldStart("concurrency")
	e.Int(opts.Concurrency)
	e.FieldStart("scanTimeoutMs")
	e.Int(opts.ScanTimeoutMs)
	e.FieldStart("clickDelayMs")
	e.Int(opts.ClickDelayMs)
	e.ObjEnd()
	e.FieldStart(FieldExceptions)
	encodeList(&e, src.Exceptions())
	e.FieldStart(FieldUnfollowed)
	encodeList(&e, src.Unfollowed())
	e.ObjEnd()

	return e.Bytes()
}

func encodeList(e *jx.Encoder, set domain.Set) {
	e.ArrStart()
	for _, u := range set.Strings() {
		e.Str(u)
	}
	e.ArrEnd()
}

// Report tells which parts of a payload were applied.
type Report struct {
	Account    string   `json:"account,omitempty"`
	Exceptions bool     `json:"exceptions"`
	Unfollowed bool     `json:"unfollowed"`
	Options    []string `json:"options"`
	Ignored    []string `json:"ignored"`
}

// parsed is a decoded payload before it is applied.
type parsed struct {
	account    string
	exceptions domain.Set
	unfollowed domain.Set
	options    map[string]any
	ignored    []string
}

// Import applies data to dst. Lists that are lists of strings replace the
// stored ones; option fields of the right type are merged over the current
// options; everything else is ignored and reported. Invalid JSON or a
// non-object payload fails with serrors.ErrBadRequest before anything is
// written.
func Import(ctx context.Context, dst Target, data []byte) (*Report, error) {
	p, err := parse(data)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid backup")
	}
	if p.account != "" && domain.Normalize(p.account) != domain.Username(dst.Account()) {
		logger.Warn(ctx, "importing a backup made for another account", zap.String("backupAccount", p.account))
	}

	rep := &Report{Account: p.account, Options: []string{}, Ignored: p.ignored}
	if p.exceptions != nil {
		if err := dst.ReplaceExceptions(ctx, p.exceptions); err != nil {
			return rep, errors.Wrap(err, "import exceptions")
		}
		rep.Exceptions = true
	}
	if p.unfollowed != nil {
		if err := dst.ReplaceUnfollowed(ctx, p.unfollowed); err != nil {
			return rep, errors.Wrap(err, "import unfollowed")
		}
		rep.Unfollowed = true
	}
	if len(p.options) > 0 {
		opts := dst.Options()
		for _, name := range []string{"blockReFollow", "concurrency", "scanTimeoutMs", "clickDelayMs"} {
			v, ok := p.options[name]
			if !ok {
				continue
			}
			switch name {
			case "blockReFollow":
				opts.BlockReFollow = v.(bool)
			case "concurrency":
				opts.Concurrency = v.(int)
			case "scanTimeoutMs":
				opts.ScanTimeoutMs = v.(int)
			case "clickDelayMs":
				opts.ClickDelayMs = v.(int)
			}
			rep.Options = append(rep.Options, name)
		}
		if _, err := dst.SaveOptions(ctx, opts); err != nil {
			return rep, errors.Wrap(err, "import options")
		}
	}

	return rep, nil
}

func parse(data []byte) (*parsed, error) {
	if err := jx.DecodeBytes(data).Validate(); err != nil {
		return nil, errors.Wrap(err, "malformed json")
	}
	d := jx.DecodeBytes(data)
	if d.Next() != jx.Object {
		return nil, errors.New("backup is not an object")
	}

	p := &parsed{}
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case FieldAccount:
			if d.Next() == jx.String {
				s, err := d.Str()
				p.account = s

				return err
			}
			p.ignored = append(p.ignored, key)
		case FieldExceptions:
			set, err := decodeList(d)
			if err != nil {
				return err
			}
			if set != nil {
				p.exceptions = set

				return nil
			}
			p.ignored = append(p.ignored, key)

			return nil
		case FieldUnfollowed:
			set, err := decodeList(d)
			if err != nil {
				return err
			}
			if set != nil {
				p.unfollowed = set

				return nil
			}
			p.ignored = append(p.ignored, key)

			return nil
		case FieldOptions:
			if d.Next() == jx.Object {
				opts, ignored, err := decodeOptions(d)
				p.options = opts
				for _, f := range ignored {
					p.ignored = append(p.ignored, FieldOptions+"."+f)
				}

				return err
			}
			p.ignored = append(p.ignored, key)
		case FieldTimestamp, legacyTimestamp:
		default:
			p.ignored = append(p.ignored, key)
		}

		return d.Skip()
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode backup")
	}

	return p, nil
}

// decodeList consumes the value and returns a set when it is a list of
// strings, nil otherwise.
func decodeList(d *jx.Decoder) (domain.Set, error) {
	raw, err := d.Raw()
	if err != nil {
		return nil, err
	}
	rd := jx.DecodeBytes(raw)
	if rd.Next() != jx.Array {
		return nil, nil
	}

	var names []string
	valid := true
	err = rd.Arr(func(d *jx.Decoder) error {
		if d.Next() != jx.String {
			valid = false

			return d.Skip()
		}
		s, err := d.Str()
		names = append(names, s)

		return err
	})
	if err != nil || !valid {
		return nil, err
	}

	return domain.ParseSet(names), nil
}

// decodeOptions returns the option fields that have the right type and the
// names of the ones that do not. disableFollowOnUnfollowed is read as
// blockReFollow unless the latter is present too.
func decodeOptions(d *jx.Decoder) (map[string]any, []string, error) {
	out := map[string]any{}
	var ignored []string
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "blockReFollow", legacyBlockReFollow:
			if d.Next() == jx.Bool {
				v, err := d.Bool()
				if _, set := out["blockReFollow"]; key == "blockReFollow" || !set {
					out["blockReFollow"] = v
				}

				return err
			}
		case "concurrency", "scanTimeoutMs", "clickDelayMs":
			if d.Next() == jx.Number {
				raw, err := d.Raw()
				if err != nil {
					return err
				}
				if v, err := jx.DecodeBytes(raw).Int(); err == nil {
					out[key] = v

					return nil
				}
				ignored = append(ignored, key)

				return nil
			}
		default:
			ignored = append(ignored, key)

			return d.Skip()
		}
		ignored = append(ignored, key)

		return d.Skip()
	})

	return out, ignored, err
}
