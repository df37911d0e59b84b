// ABOUTME: Build identification for the player and admin tools
// ABOUTME: Reported in log headers and the TUI title bar
package version

const (
	Version      = "0.3.0"
	Product      = "Amar Pathshala"
	Manufacturer = "Amar Pathshala Project"
)
