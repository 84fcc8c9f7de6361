package normalization

// Vocabulary is a fixed reference list. Declaration order is the tie-break order.
type Vocabulary []string

var (
	Industries = Vocabulary{
		"Technology", "Finance", "Healthcare", "Education", "Retail",
		"Manufacturing", "Real Estate", "Transportation", "Energy",
		"Telecommunications", "Media", "Entertainment", "Construction",
		"Agriculture", "Aerospace", "Automotive", "Chemicals", "Hospitality",
	}

	Functions = Vocabulary{
		"Sales", "Marketing", "Engineering", "IT", "Finance", "HR",
		"Operations", "Legal", "Product", "Design", "Support", "Executive",
	}

	Titles = Vocabulary{
		"Software Engineer", "Product Manager", "Data Scientist",
		"Sales Representative", "Marketing Manager", "Account Executive",
		"CEO", "CTO", "CFO", "Director", "VP", "Manager", "Analyst",
		"HR Manager", "System Administrator", "DevOps Engineer",
	}

	EmailDomains = Vocabulary{"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "icloud.com"}

	// keys are lower-case
	functionAbbreviations = map[string]string{
		"eng":       "Engineering",
		"mktg":      "Marketing",
		"ops":       "Operations",
		"hr":        "HR",
		"tech":      "IT",
		"info tech": "IT",
	}
)
