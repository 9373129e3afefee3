package domain

import "time"

// Demo records loaded when a collection has never been saved.

func seedTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func SeedProperties() []Property {
	return []Property{
		{
			ID:          "prop-1",
			Name:        "Sunset Villa",
			Address:     "123 Ocean View Drive, Malibu, CA 90265",
			Description: "Luxury beachfront property with stunning sunset views",
			CreatedAt:   seedTime("2024-01-15T10:00:00Z"),
		},
		{
			ID:          "prop-2",
			Name:        "Downtown Loft",
			Address:     "456 City Center Ave, Los Angeles, CA 90012",
			Description: "Modern downtown loft in the heart of the city",
			CreatedAt:   seedTime("2024-01-20T14:30:00Z"),
		},
	}
}

func SeedQuestions() []CheckInQuestion {
	return []CheckInQuestion{
		{ID: "q-1", PropertyID: "prop-1", Question: "How many guests will be staying?", CreatedAt: seedTime("2024-01-16T10:00:00Z")},
		{ID: "q-2", PropertyID: "prop-2", Question: "What time do you plan to arrive?", CreatedAt: seedTime("2024-01-21T09:00:00Z")},
	}
}

func SeedAnswers() []QuestionAnswer {
	return []QuestionAnswer{
		{ID: "a-1", QuestionID: "q-1", AnswerText: "1-2 guests", InstructionPageID: LinkPage("page-1"), CreatedAt: seedTime("2024-01-16T10:30:00Z")},
		{ID: "a-2", QuestionID: "q-1", AnswerText: "3-4 guests", InstructionPageID: LinkPage("page-2"), CreatedAt: seedTime("2024-01-16T10:31:00Z")},
		{ID: "a-3", QuestionID: "q-2", AnswerText: "Before 3 PM", InstructionPageID: LinkPage("page-3"), CreatedAt: seedTime("2024-01-21T09:30:00Z")},
		{ID: "a-4", QuestionID: "q-2", AnswerText: "After 3 PM", InstructionPageID: LinkPage("page-4"), CreatedAt: seedTime("2024-01-21T09:31:00Z")},
	}
}

const pexels = "?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2"

func SeedInstructionPages() []InstructionPage {
	return []InstructionPage{
		{
			ID:         "page-1",
			PropertyID: "prop-1",
			Title:      "Check-in Instructions for 1-2 Guests",
			Steps: StepList{
				{ID: "step-1-1", Title: "Find the Key Lockbox", Description: "Locate the key lockbox on the right side of the front door. It's a black digital lockbox mounted on the wall.", ImageURL: "https://images.pexels.com/photos/279719/pexels-photo-279719.jpeg" + pexels},
				{ID: "step-1-2", Title: "Enter the Access Code", Description: "Enter the code: 1234. Press the lock button to unlock the box.", ImageURL: "https://images.pexels.com/photos/534220/pexels-photo-534220.jpeg" + pexels},
				{ID: "step-1-3", Title: "Retrieve the Keys", Description: "Take the house keys from inside the lockbox. There should be 2 keys: front door and back patio.", ImageURL: "https://images.pexels.com/photos/48771/pexels-photo-48771.jpeg" + pexels},
				{ID: "step-1-4", Title: "Enter the Property", Description: "Use the front door key to unlock and enter. The alarm system is disabled for your arrival."},
			}.Renumber(),
			CreatedAt: seedTime("2024-01-16T11:00:00Z"),
		},
		{
			ID:         "page-2",
			PropertyID: "prop-1",
			Title:      "Check-in Instructions for 3-4 Guests",
			Steps: StepList{
				{ID: "step-2-1", Title: "Contact Property Manager", Description: "For larger groups, please call the property manager at (555) 123-4567 for personalized check-in assistance."},
				{ID: "step-2-2", Title: "Wait for Greeting", Description: "A property manager will meet you at the front entrance within 10 minutes of your call."},
			}.Renumber(),
			CreatedAt: seedTime("2024-01-16T11:30:00Z"),
		},
		{
			ID:         "page-3",
			PropertyID: "prop-2",
			Title:      "Early Arrival Instructions",
			Steps: StepList{
				{ID: "step-3-1", Title: "Building Access", Description: "Enter the building using code 9876 at the main entrance.", ImageURL: "https://images.pexels.com/photos/271816/pexels-photo-271816.jpeg" + pexels},
				{ID: "step-3-2", Title: "Elevator to Floor 15", Description: "Take the elevator to the 15th floor. Your unit is 15B."},
			}.Renumber(),
			CreatedAt: seedTime("2024-01-21T10:00:00Z"),
		},
		{
			ID:         "page-4",
			PropertyID: "prop-2",
			Title:      "Standard Check-in Instructions",
			Steps: StepList{
				{ID: "step-4-1", Title: "Building Access", Description: "Use your temporary access card to enter the building. Card was sent via email."},
				{ID: "step-4-2", Title: "Unit Access", Description: "Your unit door will unlock automatically when you tap your access card."},
			}.Renumber(),
			CreatedAt: seedTime("2024-01-21T10:30:00Z"),
		},
	}
}

// SeedGuests puts the first demo guest's check-in on today so their
// instructions are visible.
func SeedGuests(today time.Time) []Guest {
	return []Guest{
		{
			ID:           "guest-1",
			Name:         "John Doe",
			Email:        "john.doe@example.com",
			Phone:        "(555) 123-4567",
			PropertyID:   "prop-1",
			CheckInDate:  today.Format(DateLayout),
			CheckOutDate: "2024-02-05",
			MagicToken:   "magic-token-123",
			CreatedAt:    seedTime("2024-01-25T10:00:00Z"),
		},
		{
			ID:           "guest-2",
			Name:         "Jane Smith",
			Email:        "jane.smith@example.com",
			Phone:        "(555) 987-6543",
			PropertyID:   "prop-2",
			CheckInDate:  "2024-02-10",
			CheckOutDate: "2024-02-15",
			MagicToken:   "magic-token-456",
			CreatedAt:    seedTime("2024-01-26T14:00:00Z"),
		},
	}
}

// SeedCollections bundles every demo collection.
func SeedCollections(today time.Time) Collections {
	return Collections{
		Properties: SeedProperties(),
		Guests:     SeedGuests(today),
		Questions:  SeedQuestions(),
		Answers:    SeedAnswers(),
		Pages:      SeedInstructionPages(),
	}
}
