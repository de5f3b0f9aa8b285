package service

// QRCodeService defines the interface for QR code generation.
// Used to share a contact as a scannable vCard.
type QRCodeService interface {
	// GenerateVCardQR renders the given vCard payload as a PNG QR code.
	GenerateVCardQR(vcard string) ([]byte, error)
}
