package baseclient

// JSONTransform is implemented by domain objects that control their wire form.
// Transports send ToJSON() instead of the object itself.
type JSONTransform interface {
	ToJSON() interface{}
}

// JSONLoader is implemented by domain objects that rehydrate themselves from JSON.
type JSONLoader interface {
	FromJSON(data []byte) error
}

// FileMeta describes a file attached to a multipart request.
type FileMeta struct {
	Name     string
	MimeType string
	Content  []byte
}

// AsJSON returns the wire form of data.
func AsJSON(data interface{}) interface{} {
	if transform, ok := data.(JSONTransform); ok {
		return transform.ToJSON()
	}
	return data
}
