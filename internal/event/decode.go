package event

import "encoding/json"

// DecodePayload returns the payload as T. In-process publishes already carry
// T (or *T); payloads replayed from the dead-letter file arrive as generic
// maps and are converted through a JSON round-trip.
func DecodePayload[T any](input interface{}) (T, error) {
	switch v := input.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}

	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}
