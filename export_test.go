package mysqlerr

// ResetConfig forgets the lazily loaded configuration
func ResetConfig() {
	global = nil
	App = ""
}
