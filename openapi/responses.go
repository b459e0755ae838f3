package openapi

import (
	"regexp"

	"github.com/oasref/openapi/errors"
	"github.com/oasref/openapi/sequencedmap"
)

var statusCodePattern = regexp.MustCompile(`^(?:default|[1-5](?:[0-9][0-9]|XX))$`)

// Responses maps HTTP status codes, status code ranges such as 2XX, and
// "default" to the expected responses of an operation.
type Responses struct {
	Object

	Codes *sequencedmap.Map[string, *ReferencedResponse] `key:",inline"`
}

func (r *Responses) decodeEntry(key string, value any) error {
	if !statusCodePattern.MatchString(key) {
		r.addError("Responses: %s is not a valid HTTP status code.", key)
		return nil
	}

	if _, ok := value.(*sequencedmap.Map[string, any]); !ok {
		return errors.ErrType.Wrapf("Response MUST be either an array, a Response or a Reference object, \"%s\" given", typeName(value))
	}

	response := &ReferencedResponse{}
	if err := response.decode(value); err != nil {
		return err
	}

	if r.Codes == nil {
		r.Codes = sequencedmap.New[string, *ReferencedResponse]()
	}
	r.Codes.Set(key, response)

	return nil
}

// GetResponse returns the response for a status code, range or "default".
func (r *Responses) GetResponse(code string) *ReferencedResponse {
	if r == nil {
		return nil
	}
	response, _ := r.Codes.Get(code)
	return response
}

// GetDefault returns the default response, or nil.
func (r *Responses) GetDefault() *ReferencedResponse {
	return r.GetResponse("default")
}

// Response is the OpenAPI 3.0 Response Object.
type Response struct {
	Object

	Description string                                       `key:"description" required:"true"`
	Headers     *sequencedmap.Map[string, *ReferencedHeader] `key:"headers"`
	Content     *sequencedmap.Map[string, *MediaType]        `key:"content"`
	Links       *sequencedmap.Map[string, *ReferencedLink]   `key:"links"`
}
