package domain

// DefaultWords returns the built-in vocabulary shipped with the application.
// Each call returns a fresh slice.
func DefaultWords() []WordEntry {
	return []WordEntry{
		{Source: "Kamusta ka?", Target: "How are you?"},
		{Source: "Paalam", Target: "Good bye"},
		{Source: "Inom", Target: "Drink"},
		{Source: "Kain", Target: "Eat"},
		{Source: "Tae", Target: "Poop"},
		{Source: "Tayo", Target: "Stand"},
		{Source: "Upo", Target: "Sit"},
		{Source: "Upuan", Target: "Seat"},
		{Source: "Kamot", Target: "Scratch"},
		{Source: "Palo", Target: "Smack"},
		{Source: "Ngipin", Target: "Teeth"},
		{Source: "Tainga (Tenga)", Target: "Ear"},
		{Source: "Mata", Target: "Eyes"},
		{Source: "Ilong", Target: "Nose"},
		{Source: "Pisngi", Target: "Cheeks"},
		{Source: "Labi", Target: "Lips"},
		{Source: "Kilay", Target: "Eyebrows"},
		{Source: "Pilik-mata", Target: "Eyelashes"},
		{Source: "Makikiraan (po)/Tabi-tabi (po)", Target: "Excuse me"},
		{Source: "Paa", Target: "Feet"},
		{Source: "Malayo", Target: "Far"},
		{Source: "Malapit", Target: "Near"},
	}
}
