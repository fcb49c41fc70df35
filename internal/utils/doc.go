// Package utils provides request validation helpers.
//
// MaxBodySize bounds a whole request body. Message content is not checked
// here; any string is relayed.
//
// Example Usage:
//
//	if err := utils.DefaultBodyValidator().ValidateJSON(body); err != nil {
//		// reject the request
//	}
package utils
