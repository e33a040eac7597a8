package proto

// Control bytes of the display line protocol.
// Every newline-terminated line and every ENQ probe is answered with a single ACK.

type ControlByte = byte

const (
	ENQ        ControlByte = 0x05 // keep-alive probe
	ACK        ControlByte = 0x06
	NAK        ControlByte = 0x15 // reserved, never sent by the display
	Terminator ControlByte = '\n'
)
