package parser

// httpMethods is the fixed set of path-item keys recognized as operations.
// Any other key under a path item (parameters, servers, summary,
// description, extensions) is not an operation.
var httpMethods = map[string]bool{
	"get":     true,
	"post":    true,
	"put":     true,
	"patch":   true,
	"delete":  true,
	"options": true,
	"head":    true,
	"trace":   true,
}

// IsHTTPMethod reports whether key names a recognized HTTP operation.
// The comparison is done on the already lower-cased key.
func IsHTTPMethod(key string) bool {
	return httpMethods[key]
}
