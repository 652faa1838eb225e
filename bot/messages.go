package bot

const (
	welcomeMessage = "👋 Welcome to Realestate Bot 🤖\n\n" +
		"You can ask like:\n" +
		"• Noida residential projects\n" +
		"• 2 BHK ready projects in Noida\n" +
		"• Noida projects under 1 crore\n" +
		"• 3 BHK under 80 lakh\n" +
		"• Commercial projects Gurgaon\n\n" +
		"Type your requirement 👇"
	noResultsMessage = "❌ No matching projects found.\nTry changing budget, city or BHK."
	resultsHeader    = "🏗 Matching Projects:\n\n"
)

var greetings = map[string]struct{}{
	"hi":    {},
	"hello": {},
	"hey":   {},
}
