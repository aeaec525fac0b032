// Code generated by ogen, DO NOT EDIT.

package v1specs

import (
	"net/http"
	"net/url"

	"github.com/go-faster/errors"

	"github.com/ogen-go/ogen/conv"
	"github.com/ogen-go/ogen/middleware"
	"github.com/ogen-go/ogen/ogenerrors"
	"github.com/ogen-go/ogen/uri"
	"github.com/ogen-go/ogen/validate"
)

// AddExceptionParams is parameters of addException operation.
type AddExceptionParams struct {
	// Account name, matched case-insensitively.
	User string
}

func unpackAddExceptionParams(packed middleware.Parameters) (params AddExceptionParams) {
	{
		key := middleware.ParameterKey{
			Name: "user",
			In:   "path",
		}
		params.User = packed[key].(string)
	}
	return params
}

func decodeAddExceptionParams(args [1]string, argsEscaped bool, r *http.Request) (params AddExceptionParams, _ error) {
	// Decode path: user.
	if err := func() error {
		param := args[0]
		if argsEscaped {
			unescaped, err := url.PathUnescape(args[0])
			if err != nil {
				return errors.Wrap(err, "unescape path")
			}
			param = unescaped
		}
		if len(param) > 0 {
			d := uri.NewPathDecoder(uri.PathDecoderConfig{
				Param:   "user",
				Value:   param,
				Style:   uri.PathStyleSimple,
				Explode: false,
			})

			if err := func() error {
				val, err := d.DecodeValue()
				if err != nil {
					return err
				}

				c, err := conv.ToString(val)
				if err != nil {
					return err
				}

				params.User = c
				return nil
			}(); err != nil {
				return err
			}
		} else {
			return validate.ErrFieldRequired
		}
		return nil
	}(); err != nil {
		return params, &ogenerrors.DecodeParamError{
			Name: "user",
			In:   "path",
			Err:  err,
		}
	}
	return params, nil
}

// AddUnfollowedParams is parameters of addUnfollowed operation.
type AddUnfollowedParams struct {
	// Account name, matched case-insensitively.
	User string
}

func unpackAddUnfollowedParams(packed middleware.Parameters) (params AddUnfollowedParams) {
	{
		key := middleware.ParameterKey{
			Name: "user",
			In:   "path",
		}
		params.User = packed[key].(string)
	}
	return params
}

func decodeAddUnfollowedParams(args [1]string, argsEscaped bool, r *http.Request) (params AddUnfollowedParams, _ error) {
	// Decode path: user.
	if err := func() error {
		param := args[0]
		if argsEscaped {
			unescaped, err := url.PathUnescape(args[0])
			if err != nil {
				return errors.Wrap(err, "unescape path")
			}
			param = unescaped
		}
		if len(param) > 0 {
			d := uri.NewPathDecoder(uri.PathDecoderConfig{
				Param:   "user",
				Value:   param,
				Style:   uri.PathStyleSimple,
				Explode: false,
			})

			if err := func() error {
				val, err := d.DecodeValue()
				if err != nil {
					return err
				}

				c, err := conv.ToString(val)
				if err != nil {
					return err
				}

				params.User = c
				return nil
			}(); err != nil {
				return err
			}
		} else {
			return validate.ErrFieldRequired
		}
		return nil
	}(); err != nil {
		return params, &ogenerrors.DecodeParamError{
			Name: "user",
			In:   "path",
			Err:  err,
		}
	}
	return params, nil
}

// EnqueueScanParams is parameters of enqueueScan operation.
type EnqueueScanParams struct {
	// Unfollow the filtered candidates once the job's scan succeeds.
	AutoUnfollow OptBool
}

func unpackEnqueueScanParams(packed middleware.Parameters) (params EnqueueScanParams) {
	{
		key := middleware.ParameterKey{
			Name: "autoUnfollow",
			In:   "query",
		}
		if v, ok := packed[key]; ok {
			params.AutoUnfollow = v.(OptBool)
		}
	}
	return params
}

func decodeEnqueueScanParams(args [0]string, argsEscaped bool, r *http.Request) (params EnqueueScanParams, _ error) {
	q := uri.NewQueryDecoder(r.URL.Query())
	// Decode query: autoUnfollow.
	if err := func() error {
		cfg := uri.QueryParameterDecodingConfig{
			Name:    "autoUnfollow",
			Style:   uri.QueryStyleForm,
			Explode: true,
		}

		if err := q.HasParam(cfg); err == nil {
			if err := q.DecodeParam(cfg, func(d uri.Decoder) error {
				var paramsDotAutoUnfollowVal bool
				if err := func() error {
					val, err := d.DecodeValue()
					if err != nil {
						return err
					}

					c, err := conv.ToBool(val)
					if err != nil {
						return err
					}

					paramsDotAutoUnfollowVal = c
					return nil
				}(); err != nil {
					return err
				}
				params.AutoUnfollow.SetTo(paramsDotAutoUnfollowVal)
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	}(); err != nil {
		return params, &ogenerrors.DecodeParamError{
			Name: "autoUnfollow",
			In:   "query",
			Err:  err,
		}
	}
	return params, nil
}

// RemoveExceptionParams is parameters of removeException operation.
type RemoveExceptionParams struct {
	// Account name, matched case-insensitively.
	User string
}

func unpackRemoveExceptionParams(packed middleware.Parameters) (params RemoveExceptionParams) {
	{
		key := middleware.ParameterKey{
			Name: "user",
			In:   "path",
		}
		params.User = packed[key].(string)
	}
	return params
}

func decodeRemoveExceptionParams(args [1]string, argsEscaped bool, r *http.Request) (params RemoveExceptionParams, _ error) {
	// Decode path: user.
	if err := func() error {
		param := args[0]
		if argsEscaped {
			unescaped, err := url.PathUnescape(args[0])
			if err != nil {
				return errors.Wrap(err, "unescape path")
			}
			param = unescaped
		}
		if len(param) > 0 {
			d := uri.NewPathDecoder(uri.PathDecoderConfig{
				Param:   "user",
				Value:   param,
				Style:   uri.PathStyleSimple,
				Explode: false,
			})

			if err := func() error {
				val, err := d.DecodeValue()
				if err != nil {
					return err
				}

				c, err := conv.ToString(val)
				if err != nil {
					return err
				}

				params.User = c
				return nil
			}(); err != nil {
				return err
			}
		} else {
			return validate.ErrFieldRequired
		}
		return nil
	}(); err != nil {
		return params, &ogenerrors.DecodeParamError{
			Name: "user",
			In:   "path",
			Err:  err,
		}
	}
	return params, nil
}

// RemoveUnfollowedParams is parameters of removeUnfollowed operation.
type RemoveUnfollowedParams struct {
	// Account name, matched case-insensitively.
	User string
}

func unpackRemoveUnfollowedParams(packed middleware.Parameters) (params RemoveUnfollowedParams) {
	{
		key := middleware.ParameterKey{
			Name: "user",
			In:   "path",
		}
		params.User = packed[key].(string)
	}
	return params
}

func decodeRemoveUnfollowedParams(args [1]string, argsEscaped bool, r *http.Request) (params RemoveUnfollowedParams, _ error) {
	// Decode path: user.
	if err := func() error {
		param := args[0]
		if argsEscaped {
			unescaped, err := url.PathUnescape(args[0])
			if err != nil {
				return errors.Wrap(err, "unescape path")
			}
			param = unescaped
		}
		if len(param) > 0 {
			d := uri.NewPathDecoder(uri.PathDecoderConfig{
				Param:   "user",
				Value:   param,
				Style:   uri.PathStyleSimple,
				Explode: false,
			})

			if err := func() error {
				val, err := d.DecodeValue()
				if err != nil {
					return err
				}

				c, err := conv.ToString(val)
				if err != nil {
					return err
				}

				params.User = c
				return nil
			}(); err != nil {
				return err
			}
		} else {
			return validate.ErrFieldRequired
		}
		return nil
	}(); err != nil {
		return params, &ogenerrors.DecodeParamError{
			Name: "user",
			In:   "path",
			Err:  err,
		}
	}
	return params, nil
}
