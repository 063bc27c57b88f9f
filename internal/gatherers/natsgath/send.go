package natsgath

import (
	"encoding/json"
	"log"

	"github.com/klauspost/compress/snappy"
)

func (s *natsGatherer) send(msg interface{}) {
	b, err := json.Marshal(msg)
	if err != nil {
		log.Printf("failed to marshal message: %v", err)
		return
	}

	compressed := snappy.Encode(nil, b)
	if err := s.nc.Publish(s.subject, compressed); err != nil {
		log.Printf("failed to publish message to NATS: %v", err)
	}
}
