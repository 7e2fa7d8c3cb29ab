package domain

// SlabCategory classifies a tax slab by the kind of goods or services it covers.
type SlabCategory string

const (
	CategoryEssentialGoods SlabCategory = "Essential Goods"
	CategoryStandard       SlabCategory = "Standard"
	CategoryLuxury         SlabCategory = "Luxury"
	CategoryServices       SlabCategory = "Services"
	CategorySpecial        SlabCategory = "Special"
	CategoryExempted       SlabCategory = "Exempted"
)

// ValidSlabCategories is the closed set of accepted slab categories.
var ValidSlabCategories = map[SlabCategory]bool{
	CategoryEssentialGoods: true,
	CategoryStandard:       true,
	CategoryLuxury:         true,
	CategoryServices:       true,
	CategorySpecial:        true,
	CategoryExempted:       true,
}

// SlabType describes how a slab is levied.
type SlabType string

const (
	SlabTypeRegular    SlabType = "Regular"
	SlabTypeCompounded SlabType = "Compounded"
	SlabTypeExempted   SlabType = "Exempted"
	SlabTypeNilRated   SlabType = "Nil Rated"
)

// ValidSlabTypes is the closed set of accepted slab types.
var ValidSlabTypes = map[SlabType]bool{
	SlabTypeRegular:    true,
	SlabTypeCompounded: true,
	SlabTypeExempted:   true,
	SlabTypeNilRated:   true,
}

// SlabStatus marks whether a slab is selectable for billing.
type SlabStatus string

const (
	SlabStatusActive   SlabStatus = "active"
	SlabStatusInactive SlabStatus = "inactive"
)

// EntryStatus represents the payment lifecycle of a tax entry. Transitions
// between the four states are unrestricted.
type EntryStatus string

const (
	EntryStatusDraft     EntryStatus = "Draft"
	EntryStatusPending   EntryStatus = "Pending"
	EntryStatusPaid      EntryStatus = "Paid"
	EntryStatusCancelled EntryStatus = "Cancelled"
)

// ValidEntryStatuses is the closed set of accepted entry statuses.
var ValidEntryStatuses = map[EntryStatus]bool{
	EntryStatusDraft:     true,
	EntryStatusPending:   true,
	EntryStatusPaid:      true,
	EntryStatusCancelled: true,
}

// ReturnType identifies the statutory GST return an entry is filed under.
type ReturnType string

const (
	ReturnGSTR1  ReturnType = "GSTR-1"
	ReturnGSTR2  ReturnType = "GSTR-2"
	ReturnGSTR2A ReturnType = "GSTR-2A"
	ReturnGSTR2B ReturnType = "GSTR-2B"
	ReturnGSTR3B ReturnType = "GSTR-3B"
)

// KnownReturnTypes lists the five supported return types in reporting order.
var KnownReturnTypes = []ReturnType{
	ReturnGSTR1,
	ReturnGSTR2,
	ReturnGSTR2A,
	ReturnGSTR2B,
	ReturnGSTR3B,
}

// ValidReturnTypes is the closed set of accepted return types.
var ValidReturnTypes = map[ReturnType]bool{
	ReturnGSTR1:  true,
	ReturnGSTR2:  true,
	ReturnGSTR2A: true,
	ReturnGSTR2B: true,
	ReturnGSTR3B: true,
}

// UserRole defines the role of an API user.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)
