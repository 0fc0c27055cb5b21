package optbridge

// Producer supplies one Envelope per call. It takes no arguments and has no
// error channel: "no value" is reported only through the discriminant.
type Producer interface {
	Produce() Envelope
}

// ProducerFunc adapts a plain function to Producer.
type ProducerFunc func() Envelope

func (f ProducerFunc) Produce() Envelope { return f() }

// StaticProducer always returns the same envelope.
type StaticProducer Envelope

func (p StaticProducer) Produce() Envelope { return Envelope(p) }
