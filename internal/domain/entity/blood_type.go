package entity

// BloodTypes is the canonical set of blood types tracked by the network.
// Every derived stats record carries exactly one entry per type.
var BloodTypes = []string{"O+", "A+", "B+", "AB+", "O-", "A-", "B-", "AB-"}

// BloodTypeCount is the number of canonical blood types.
const BloodTypeCount = 8

// IsValidBloodType reports whether bt is one of the canonical blood types.
func IsValidBloodType(bt string) bool {
	for _, t := range BloodTypes {
		if t == bt {
			return true
		}
	}
	return false
}
