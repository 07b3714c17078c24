package util

// Envelope is the JSON body shape every handler responds with: a single
// top-level key naming the payload, or "error" with a message.
type Envelope map[string]any

func Error(message string) Envelope {
	return Envelope{"error": message}
}

// Data wraps a payload under its response key, e.g. Data("trips", trips).
func Data(key string, value any) Envelope {
	return Envelope{key: value}
}
