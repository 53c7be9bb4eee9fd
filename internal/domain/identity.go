package domain

// IdentityMode distinguishes trial ("demo") identities from registered ones.
type IdentityMode string

const (
	ModeDemo IdentityMode = "demo"
	ModeReal IdentityMode = "real"
)

// Identity is the current owner as supplied by the auth layer. The tracking
// core never creates or mutates identities; it only reads them per call.
type Identity struct {
	OwnerID string       `json:"ownerId"`
	Mode    IdentityMode `json:"mode"`
}

func (i *Identity) IsDemo() bool {
	return i.Mode == ModeDemo
}

func (i *Identity) IsReal() bool {
	return i.Mode == ModeReal
}
