package cpu

// Quirks selects between historically divergent instruction semantics.
// All toggles are off by default and fixed for the lifetime of a run.
type Quirks struct {
	// ShiftUsesVY copies Vy into Vx before 8xy6 and 8xyE shift it.
	ShiftUsesVY bool
	// JumpOffsetUsesVX turns Bnnn into Bxnn, jumping to xnn + Vx.
	JumpOffsetUsesVX bool
	// LoadStoreIncrementsI advances I by x+1 after Fx55 and Fx65.
	LoadStoreIncrementsI bool
	// LogicResetsVF clears VF after 8xy1, 8xy2 and 8xy3.
	LogicResetsVF bool
}
