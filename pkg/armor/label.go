package armor

// PacketTag identifies the type of an OpenPGP packet. See RFC 4880 section 4.3.
type PacketTag uint8

// The packet tags which select a specific armor label.
const (
	TagSignature PacketTag = 2
	TagSecretKey PacketTag = 5
	TagPublicKey PacketTag = 6
)

// Label is the block type written between "-----BEGIN PGP " and "-----".
type Label string

const (
	LabelMessage    Label = "MESSAGE"
	LabelPublicKey  Label = "PUBLIC KEY BLOCK"
	LabelPrivateKey Label = "PRIVATE KEY BLOCK"
	LabelSignature  Label = "SIGNATURE"
)

// Tag decodes the packet tag from the first byte of an OpenPGP packet. If bit 0x40 is set the
// byte uses the new packet format and the tag is its low six bits; otherwise the tag is stored in
// bits 2 through 5.
func Tag(b byte) PacketTag {
	if b&0x40 != 0 {
		return PacketTag(b & 0x3f)
	}

	return PacketTag((b & 0x3f) >> 2)
}

// Classify returns the armor label for a payload which begins with the given byte. Unknown packet
// tags are armored as messages.
func Classify(b byte) Label {
	switch Tag(b) {
	case TagPublicKey:
		return LabelPublicKey
	case TagSecretKey:
		return LabelPrivateKey
	case TagSignature:
		return LabelSignature
	default:
		return LabelMessage
	}
}
