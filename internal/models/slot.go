package models

// Slot is one of the fixed file attachment points of an application.
type Slot string

const (
	SlotLogoAI             Slot = "logoAI"
	SlotLogoJPEG           Slot = "logoJPEG"
	SlotBrandGuideline     Slot = "brandGuideline"
	SlotSupportingDocument Slot = "supportingDocument"
)

// Slots lists every slot in upload order.
var Slots = []Slot{
	SlotLogoAI,
	SlotLogoJPEG,
	SlotBrandGuideline,
	SlotSupportingDocument,
}

type slotInfo struct {
	category  string
	label     string
	keyPrefix string
}

var slotTable = map[Slot]slotInfo{
	SlotLogoAI:             {category: "logos/ai", label: "Logo AI", keyPrefix: "logo_ai"},
	SlotLogoJPEG:           {category: "logos/jpeg", label: "Logo JPEG", keyPrefix: "logo_jpeg"},
	SlotBrandGuideline:     {category: "brand-guidelines", label: "Brand Guideline", keyPrefix: "brand_guideline"},
	SlotSupportingDocument: {category: "supporting-documents", label: "Supporting Document", keyPrefix: "supporting_document"},
}

// Category is the object store path prefix for the slot.
func (s Slot) Category() string { return slotTable[s].category }

// Label is the human readable slot name used in upload error messages.
func (s Slot) Label() string { return slotTable[s].label }

func (s Slot) KeyPrefix() string { return slotTable[s].keyPrefix }

func (s Slot) Valid() bool {
	_, ok := slotTable[s]
	return ok
}

func ParseSlot(name string) (Slot, bool) {
	s := Slot(name)
	return s, s.Valid()
}
