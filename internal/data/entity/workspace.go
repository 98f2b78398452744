package entity

// Workspace is one tenant. Timezone holds an IANA zone name and decides
// how wall-clock slot templates map to instants for that tenant.
type Workspace struct {
	Base
	Slug                 string `db:"slug"`
	Name                 string `db:"name"`
	Timezone             string `db:"timezone"`
	PublicBookingEnabled bool   `db:"public_booking_enabled"`
}
