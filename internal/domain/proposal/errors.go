package proposal

import "errors"

// ErrUnknownProduct indicates a quote line referencing a product the backend did not return.
var ErrUnknownProduct = errors.New("unknown product")
