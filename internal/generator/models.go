package generator

// Request carries the user-supplied fields for one generation. The front
// ends fill in their defaults before handing it to the Service; the Service
// validates strictly and rejects anything the validators do not accept.
type Request struct {
	Template string `json:"template" form:"template"`
	Title    string `json:"title"    form:"title"`
	Style    string `json:"style"    form:"style"`
	Company  string `json:"company"  form:"company"`
}

// Artifact is a generated PDF held in memory, ready to stream to a client.
type Artifact struct {
	Filename string
	Data     []byte
}
