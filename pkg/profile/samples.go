package profile

// Samples returns the built-in demo profiles keyed by segment shorthand.
// They mirror the customers used throughout the product demos and tests.
func Samples() map[string]CustomerProfile {
	return map[string]CustomerProfile{
		"young_professional": {
			Name:          "Minh Nguyen",
			Age:           28,
			Segment:       "Young Professional",
			Tone:          "casual",
			Greeting:      "Chào Minh! 🧧",
			HasMotor:      true,
			Income:        "high",
			TravelHistory: []string{"Da Nang", "Phu Quoc"},
			TetPlans:      "Traveling home to Vinh (300km)",
		},
		"family": {
			Name:          "Linh Tran",
			Age:           35,
			Segment:       "Family with Kids",
			Tone:          "friendly",
			Greeting:      "Chúc mừng năm mới chị Linh!",
			HasMotor:      true,
			HasHealth:     true,
			Income:        "medium",
			FamilySize:    4,
			Children:      2,
			TravelHistory: []string{"Vung Tau", "Nha Trang"},
			TetPlans:      "Hosting family gathering",
		},
		"senior": {
			Name:          "Tuấn Lê",
			Age:           55,
			Segment:       "Senior/Retiree",
			Tone:          "formal",
			Greeting:      "Kính chúc quý khách năm mới an khang thịnh vượng",
			HasMotor:      true,
			HasHealth:     true,
			HasLife:       true,
			Income:        "medium",
			TravelHistory: []string{"Dalat", "Ha Noi"},
			TetPlans:      "Visiting children in Saigon",
		},
		"business_owner": {
			Name:          "Hùng Pham",
			Age:           42,
			Segment:       "Small Business Owner",
			Tone:          "professional",
			Greeting:      "Chào anh Hùng! Chúc năm mới phát tài phát lộc!",
			HasMotor:      true,
			HasHealth:     true,
			Income:        "high",
			Business:      "Restaurant",
			TravelHistory: []string{"Singapore", "Bangkok"},
			TetPlans:      "Business trip to Hanoi",
		},
	}
}
