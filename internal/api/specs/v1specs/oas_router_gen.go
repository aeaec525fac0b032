// Code generated by ogen, DO NOT EDIT.

package v1specs

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/ogen-go/ogen/uri"
)

func (s *Server) cutPrefix(path string) (string, bool) {
	prefix := s.cfg.Prefix
	if prefix == "" {
		return path, true
	}
	if !strings.HasPrefix(path, prefix) {
		// Prefix doesn't match.
		return "", false
	}
	// Cut prefix from the path.
	return strings.TrimPrefix(path, prefix), true
}

// ServeHTTP serves http request as defined by OpenAPI v3 specification,
// calling handler that matches the path or returning not found error.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	elem := r.URL.Path
	elemIsEscaped := false
	if rawPath := r.URL.RawPath; rawPath != "" {
		if normalized, ok := uri.NormalizeEscapedPath(rawPath); ok {
			elem = normalized
			elemIsEscaped = strings.ContainsRune(elem, '%')
		}
	}

	elem, ok := s.cutPrefix(elem)
	if !ok || len(elem) == 0 {
		s.notFound(w, r)
		return
	}
	args := [1]string{}

	// Static code generated router with unwrapped path search.
	switch {
	default:
		if len(elem) == 0 {
			break
		}
		switch elem[0] {
		case '/': // Prefix: "/"

			if l := len("/"); len(elem) >= l && elem[0:l] == "/" {
				elem = elem[l:]
			} else {
				break
			}

			if len(elem) == 0 {
				break
			}
			switch elem[0] {
			case 'e': // Prefix: "exceptions"

				if l := len("exceptions"); len(elem) >= l && elem[0:l] == "exceptions" {
					elem = elem[l:]
				} else {
					break
				}

				if len(elem) == 0 {
					switch r.Method {
					case "GET":
						s.handleListExceptionsRequest([0]string{}, elemIsEscaped, w, r)
					case "PUT":
						s.handleReplaceExceptionsRequest([0]string{}, elemIsEscaped, w, r)
					default:
						s.notAllowed(w, r, "GET,PUT")
					}

					return
				}
				switch elem[0] {
				case '/': // Prefix: "/"

					if l := len("/"); len(elem) >= l && elem[0:l] == "/" {
						elem = elem[l:]
					} else {
						break
					}

					// Param: "user"
					// Leaf parameter, slashes are prohibited
					idx := strings.IndexByte(elem, '/')
					if idx >= 0 {
						break
					}
					args[0] = elem
					elem = ""

					if len(elem) == 0 {
						// Leaf node.
						switch r.Method {
						case "DELETE":
							s.handleRemoveExceptionRequest([1]string{
								args[0],
							}, elemIsEscaped, w, r)
						case "POST":
							s.handleAddExceptionRequest([1]string{
								args[0],
							}, elemIsEscaped, w, r)
						default:
							s.notAllowed(w, r, "DELETE,POST")
						}

						return
					}

				}

			case 'g': // Prefix: "guard"

				if l := len("guard"); len(elem) >= l && elem[0:l] == "guard" {
					elem = elem[l:]
				} else {
					break
				}

				if len(elem) == 0 {
					// Leaf node.
					switch r.Method {
					case "PUT":
						s.handleSetGuardRequest([0]string{}, elemIsEscaped, w, r)
					default:
						s.notAllowed(w, r, "PUT")
					}

					return
				}

			case 'o': // Prefix: "options"

				if l := len("options"); len(elem) >= l && elem[0:l] == "options" {
					elem = elem[l:]
				} else {
					break
				}

				if len(elem) == 0 {
					// Leaf node.
					switch r.Method {
					case "GET":
						s.handleGetOptionsRequest([0]string{}, elemIsEscaped, w, r)
					case "PUT":
						s.handleUpdateOptionsRequest([0]string{}, elemIsEscaped, w, r)
					default:
						s.notAllowed(w, r, "GET,PUT")
					}

					return
				}

			case 's': // Prefix: "s"

				if l := len("s"); len(elem) >= l && elem[0:l] == "s" {
					elem = elem[l:]
				} else {
					break
				}

				if len(elem) == 0 {
					break
				}
				switch elem[0] {
				case 'c': // Prefix: "can"

					if l := len("can"); len(elem) >= l && elem[0:l] == "can" {
						elem = elem[l:]
					} else {
						break
					}

					if len(elem) == 0 {
						switch r.Method {
						case "GET":
							s.handleGetScanRequest([0]string{}, elemIsEscaped, w, r)
						case "POST":
							s.handleRunScanRequest([0]string{}, elemIsEscaped, w, r)
						default:
							s.notAllowed(w, r, "GET,POST")
						}

						return
					}
					switch elem[0] {
					case '/': // Prefix: "/jobs"

						if l := len("/jobs"); len(elem) >= l && elem[0:l] == "/jobs" {
							elem = elem[l:]
						} else {
							break
						}

						if len(elem) == 0 {
							// Leaf node.
							switch r.Method {
							case "POST":
								s.handleEnqueueScanRequest([0]string{}, elemIsEscaped, w, r)
							default:
								s.notAllowed(w, r, "POST")
							}

							return
						}

					}

				case 't': // Prefix: "tate"

					if l := len("tate"); len(elem) >= l && elem[0:l] == "tate" {
						elem = elem[l:]
					} else {
						break
					}

					if len(elem) == 0 {
						// Leaf node.
						switch r.Method {
						case "GET":
							s.handleGetStateRequest([0]string{}, elemIsEscaped, w, r)
						default:
							s.notAllowed(w, r, "GET")
						}

						return
					}

				}

			case 'u': // Prefix: "u"

				if l := len("u"); len(elem) >= l && elem[0:l] == "u" {
					elem = elem[l:]
				} else {
					break
				}

				if len(elem) == 0 {
					break
				}
				switch elem[0] {
				case 'i': // Prefix: "i/toggle"

					if l := len("i/toggle"); len(elem) >= l && elem[0:l] == "i/toggle" {
						elem = elem[l:]
					} else {
						break
					}

					if len(elem) == 0 {
						// Leaf node.
						switch r.Method {
						case "POST":
							s.handleToggleUIRequest([0]string{}, elemIsEscaped, w, r)
						default:
							s.notAllowed(w, r, "POST")
						}

						return
					}

				case 'n': // Prefix: "nfollowed"

					if l := len("nfollowed"); len(elem) >= l && elem[0:l] == "nfollowed" {
						elem = elem[l:]
					} else {
						break
					}

					if len(elem) == 0 {
						switch r.Method {
						case "DELETE":
							s.handleClearUnfollowedRequest([0]string{}, elemIsEscaped, w, r)
						case "GET":
							s.handleListUnfollowedRequest([0]string{}, elemIsEscaped, w, r)
						case "PUT":
							s.handleReplaceUnfollowedRequest([0]string{}, elemIsEscaped, w, r)
						default:
							s.notAllowed(w, r, "DELETE,GET,PUT")
						}

						return
					}
					switch elem[0] {
					case '/': // Prefix: "/"

						if l := len("/"); len(elem) >= l && elem[0:l] == "/" {
							elem = elem[l:]
						} else {
							break
						}

						// Param: "user"
						// Leaf parameter, slashes are prohibited
						idx := strings.IndexByte(elem, '/')
						if idx >= 0 {
							break
						}
						args[0] = elem
						elem = ""

						if len(elem) == 0 {
							// Leaf node.
							switch r.Method {
							case "DELETE":
								s.handleRemoveUnfollowedRequest([1]string{
									args[0],
								}, elemIsEscaped, w, r)
							case "POST":
								s.handleAddUnfollowedRequest([1]string{
									args[0],
								}, elemIsEscaped, w, r)
							default:
								s.notAllowed(w, r, "DELETE,POST")
							}

							return
						}

					}

				}

			}

		}
	}
	s.notFound(w, r)
}

// Route is route object.
type Route struct {
	name        string
	summary     string
	operationID string
	pathPattern string
	count       int
	args        [1]string
}

// Name returns ogen operation name.
//
// It is guaranteed to be unique and not empty.
func (r Route) Name() string {
	return r.name
}

// Summary returns OpenAPI summary.
func (r Route) Summary() string {
	return r.summary
}

// OperationID returns OpenAPI operationId.
func (r Route) OperationID() string {
	return r.operationID
}

// PathPattern returns OpenAPI path.
func (r Route) PathPattern() string {
	return r.pathPattern
}

// Args returns parsed arguments.
func (r Route) Args() []string {
	return r.args[:r.count]
}

// FindRoute finds Route for given method and path.
//
// Note: this method does not unescape path or handle reserved characters in path properly. Use FindPath instead.
func (s *Server) FindRoute(method, path string) (Route, bool) {
	return s.FindPath(method, &url.URL{Path: path})
}

// FindPath finds Route for given method and URL.
func (s *Server) FindPath(method string, u *url.URL) (r Route, _ bool) {
	var (
		elem = u.Path
		args = r.args
	)
	if rawPath := u.RawPath; rawPath != "" {
		if normalized, ok := uri.NormalizeEscapedPath(rawPath); ok {
			elem = normalized
		}
		defer func() {
			for i, arg := range r.args[:r.count] {
				if unescaped, err := url.PathUnescape(arg); err == nil {
					r.args[i] = unescaped
				}
			}
		}()
	}

	elem, ok := s.cutPrefix(elem)
	if !ok {
		return r, false
	}

	// Static code generated router with unwrapped path search.
	switch {
	default:
		if len(elem) == 0 {
			break
		}
		switch elem[0] {
		case '/': // Prefix: "/"

			if l := len("/"); len(elem) >= l && elem[0:l] == "/" {
				elem = elem[l:]
			} else {
				break
			}

			if len(elem) == 0 {
				break
			}
			switch elem[0] {
			case 'e': // Prefix: "exceptions"

				if l := len("exceptions"); len(elem) >= l && elem[0:l] == "exceptions" {
					elem = elem[l:]
				} else {
					break
				}

				if len(elem) == 0 {
					switch method {
					case "GET":
						r.name = ListExceptionsOperation
						r.summary = "Accounts never unfollowed"
						r.operationID = "listExceptions"
						r.pathPattern = "/exceptions"
						r.args = args
						r.count = 0
						return r, true
					case "PUT":
						r.name = ReplaceExceptionsOperation
						r.summary = "Replace the exception set"
						r.operationID = "replaceExceptions"
						r.pathPattern = "/exceptions"
						r.args = args
						r.count = 0
						return r, true
					default:
						return
					}
				}
				switch elem[0] {
				case '/': // Prefix: "/"

					if l := len("/"); len(elem) >= l && elem[0:l] == "/" {
						elem = elem[l:]
					} else {
						break
					}

					// Param: "user"
					// Leaf parameter, slashes are prohibited
					idx := strings.IndexByte(elem, '/')
					if idx >= 0 {
						break
					}
					args[0] = elem
					elem = ""

					if len(elem) == 0 {
						// Leaf node.
						switch method {
						case "DELETE":
							r.name = RemoveExceptionOperation
							r.summary = "Remove an account from the exceptions"
							r.operationID = "removeException"
							r.pathPattern = "/exceptions/{user}"
							r.args = args
							r.count = 1
							return r, true
						case "POST":
							r.name = AddExceptionOperation
							r.summary = "Add an account to the exceptions"
							r.operationID = "addException"
							r.pathPattern = "/exceptions/{user}"
							r.args = args
							r.count = 1
							return r, true
						default:
							return
						}
					}

				}

			case 'g': // Prefix: "guard"

				if l := len("guard"); len(elem) >= l && elem[0:l] == "guard" {
					elem = elem[l:]
				} else {
					break
				}

				if len(elem) == 0 {
					// Leaf node.
					switch method {
					case "PUT":
						r.name = SetGuardOperation
						r.summary = "Enable or disable the follow guard"
						r.operationID = "setGuard"
						r.pathPattern = "/guard"
						r.args = args
						r.count = 0
						return r, true
					default:
						return
					}
				}

			case 'o': // Prefix: "options"

				if l := len("options"); len(elem) >= l && elem[0:l] == "options" {
					elem = elem[l:]
				} else {
					break
				}

				if len(elem) == 0 {
					// Leaf node.
					switch method {
					case "GET":
						r.name = GetOptionsOperation
						r.summary = "Current options"
						r.operationID = "getOptions"
						r.pathPattern = "/options"
						r.args = args
						r.count = 0
						return r, true
					case "PUT":
						r.name = UpdateOptionsOperation
						r.summary = "Merge the given fields over the current options"
						r.operationID = "updateOptions"
						r.pathPattern = "/options"
						r.args = args
						r.count = 0
						return r, true
					default:
						return
					}
				}

			case 's': // Prefix: "s"

				if l := len("s"); len(elem) >= l && elem[0:l] == "s" {
					elem = elem[l:]
				} else {
					break
				}

				if len(elem) == 0 {
					break
				}
				switch elem[0] {
				case 'c': // Prefix: "can"

					if l := len("can"); len(elem) >= l && elem[0:l] == "can" {
						elem = elem[l:]
					} else {
						break
					}

					if len(elem) == 0 {
						switch method {
						case "GET":
							r.name = GetScanOperation
							r.summary = "Latest scan result, filtered against the current exceptions"
							r.operationID = "getScan"
							r.pathPattern = "/scan"
							r.args = args
							r.count = 0
							return r, true
						case "POST":
							r.name = RunScanOperation
							r.summary = "Scan the account and return the result"
							r.operationID = "runScan"
							r.pathPattern = "/scan"
							r.args = args
							r.count = 0
							return r, true
						default:
							return
						}
					}
					switch elem[0] {
					case '/': // Prefix: "/jobs"

						if l := len("/jobs"); len(elem) >= l && elem[0:l] == "/jobs" {
							elem = elem[l:]
						} else {
							break
						}

						if len(elem) == 0 {
							// Leaf node.
							switch method {
							case "POST":
								r.name = EnqueueScanOperation
								r.summary = "Enqueue a background scan"
								r.operationID = "enqueueScan"
								r.pathPattern = "/scan/jobs"
								r.args = args
								r.count = 0
								return r, true
							default:
								return
							}
						}

					}

				case 't': // Prefix: "tate"

					if l := len("tate"); len(elem) >= l && elem[0:l] == "tate" {
						elem = elem[l:]
					} else {
						break
					}

					if len(elem) == 0 {
						// Leaf node.
						switch method {
						case "GET":
							r.name = GetStateOperation
							r.summary = "Set sizes, options and activity of the account"
							r.operationID = "getState"
							r.pathPattern = "/state"
							r.args = args
							r.count = 0
							return r, true
						default:
							return
						}
					}

				}

			case 'u': // Prefix: "u"

				if l := len("u"); len(elem) >= l && elem[0:l] == "u" {
					elem = elem[l:]
				} else {
					break
				}

				if len(elem) == 0 {
					break
				}
				switch elem[0] {
				case 'i': // Prefix: "i/toggle"

					if l := len("i/toggle"); len(elem) >= l && elem[0:l] == "i/toggle" {
						elem = elem[l:]
					} else {
						break
					}

					if len(elem) == 0 {
						// Leaf node.
						switch method {
						case "POST":
							r.name = ToggleUIOperation
							r.summary = "Flip the shared open flag of the control surface"
							r.operationID = "toggleUI"
							r.pathPattern = "/ui/toggle"
							r.args = args
							r.count = 0
							return r, true
						default:
							return
						}
					}

				case 'n': // Prefix: "nfollowed"

					if l := len("nfollowed"); len(elem) >= l && elem[0:l] == "nfollowed" {
						elem = elem[l:]
					} else {
						break
					}

					if len(elem) == 0 {
						switch method {
						case "DELETE":
							r.name = ClearUnfollowedOperation
							r.summary = "Empty the unfollowed set"
							r.operationID = "clearUnfollowed"
							r.pathPattern = "/unfollowed"
							r.args = args
							r.count = 0
							return r, true
						case "GET":
							r.name = ListUnfollowedOperation
							r.summary = "Accounts unfollowed by the engine"
							r.operationID = "listUnfollowed"
							r.pathPattern = "/unfollowed"
							r.args = args
							r.count = 0
							return r, true
						case "PUT":
							r.name = ReplaceUnfollowedOperation
							r.summary = "Replace the unfollowed set"
							r.operationID = "replaceUnfollowed"
							r.pathPattern = "/unfollowed"
							r.args = args
							r.count = 0
							return r, true
						default:
							return
						}
					}
					switch elem[0] {
					case '/': // Prefix: "/"

						if l := len("/"); len(elem) >= l && elem[0:l] == "/" {
							elem = elem[l:]
						} else {
							break
						}

						// Param: "user"
						// Leaf parameter, slashes are prohibited
						idx := strings.IndexByte(elem, '/')
						if idx >= 0 {
							break
						}
						args[0] = elem
						elem = ""

						if len(elem) == 0 {
							// Leaf node.
							switch method {
							case "DELETE":
								r.name = RemoveUnfollowedOperation
								r.summary = "Forget an unfollowed account"
								r.operationID = "removeUnfollowed"
								r.pathPattern = "/unfollowed/{user}"
								r.args = args
								r.count = 1
								return r, true
							case "POST":
								r.name = AddUnfollowedOperation
								r.summary = "Record an account as unfollowed"
								r.operationID = "addUnfollowed"
								r.pathPattern = "/unfollowed/{user}"
								r.args = args
								r.count = 1
								return r, true
							default:
								return
							}
						}

					}

				}

			}

		}
	}
	return r, false
}
