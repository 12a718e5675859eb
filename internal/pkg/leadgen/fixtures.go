package leadgen

import "github.com/leadvine/leadvine/app/models"

// nicheSources maps each supported niche to the lead sources prospects are
// pulled from, best source first.
var nicheSources = map[string][]string{
	"Holistic Wellness": {
		"Google Business Profiles",
		"Yelp & Local Directories",
		"Industry Directories",
		"LinkedIn",
		"Facebook Business Pages",
	},
	"Spiritual Coaching": {
		"Coach Directories",
		"LinkedIn",
		"Facebook Business Pages",
		"Industry Associations",
		"Google Business Profiles",
	},
	"Digital Marketing": {
		"LinkedIn",
		"Google Business Profiles",
		"Industry Directories",
		"Chamber of Commerce",
		"Business Listings",
	},
	"Real Estate": {
		"MLS Listings",
		"Zillow",
		"Google Business Profiles",
		"Local Business Directories",
		"Chamber of Commerce",
	},
	"Financial Services": {
		"LinkedIn",
		"Industry Directories",
		"Google Business Profiles",
		"Chamber of Commerce",
		"Business Associations",
	},
}

// sampleLeadsByNiche holds the curated prospect sets delivered per niche.
// These stand in for the AI sourcing pipeline; the PartnerID is filled in at
// insert time.
var sampleLeadsByNiche = map[string][]models.Lead{
	"Holistic Wellness": {
		{
			BusinessName:       "Serenity Yoga Studio",
			ContactPerson:      "Maria Rodriguez",
			Email:              "maria@serenityoga.local",
			Phone:              "(555) 234-5678",
			Employees:          8,
			Niche:              "Holistic Wellness - Yoga",
			OnlinePresence:     "Minimal - Basic Facebook page only, no website",
			QualificationScore: 85,
			Notes:              "Active local business, strong community presence, needs digital marketing",
			LeadSource:         "Google Business Profiles",
		},
		{
			BusinessName:       "Healing Hands Massage Therapy",
			ContactPerson:      "James Chen",
			Email:              "james.chen@healinghands.biz",
			Phone:              "(555) 345-6789",
			Employees:          5,
			Niche:              "Holistic Wellness - Massage",
			OnlinePresence:     "Minimal - Google My Business only, no social media",
			QualificationScore: 90,
			Notes:              "Solo practitioner with 4 part-time staff, high demand, no online booking",
			LeadSource:         "Google Business Profiles",
		},
		{
			BusinessName:       "Crystal & Chakra Wellness Center",
			ContactPerson:      "Sarah Mitchell",
			Email:              "sarah@crystalchakra.wellness",
			Phone:              "(555) 456-7890",
			Employees:          12,
			Niche:              "Holistic Wellness - Energy Healing",
			OnlinePresence:     "Minimal - Outdated website from 2019, no email marketing",
			QualificationScore: 80,
			Notes:              "Growing business, word-of-mouth only, ready to scale with proper leads",
			LeadSource:         "Industry Directories",
		},
		{
			BusinessName:       "Wellness Coaching by Diana",
			ContactPerson:      "Diana Thompson",
			Email:              "diana@wellnesscoachingbydiana.com",
			Phone:              "(555) 567-8901",
			Employees:          3,
			Niche:              "Holistic Wellness - Life Coaching",
			OnlinePresence:     "Minimal - LinkedIn profile only, no website or social presence",
			QualificationScore: 88,
			Notes:              "Solopreneur with high-ticket services, seeking quality referrals",
			LeadSource:         "LinkedIn",
		},
		{
			BusinessName:       "Ayurveda & Herbal Remedies",
			ContactPerson:      "Priya Patel",
			Email:              "priya@ayurvedaherbal.shop",
			Phone:              "(555) 678-9012",
			Employees:          7,
			Niche:              "Holistic Wellness - Ayurveda",
			OnlinePresence:     "Minimal - Yelp listing only, no website or digital marketing",
			QualificationScore: 92,
			Notes:              "Established local business, strong reputation, completely offline",
			LeadSource:         "Yelp & Local Directories",
		},
	},
	"Spiritual Coaching": {
		{
			BusinessName:       "Divine Path Coaching",
			ContactPerson:      "Michael Torres",
			Email:              "michael@divinepath.coaching",
			Phone:              "(555) 789-0123",
			Employees:          2,
			Niche:              "Spiritual Coaching",
			OnlinePresence:     "Minimal - Website only, no social media or email marketing",
			QualificationScore: 87,
			Notes:              "Established coach with strong local following, needs digital presence",
			LeadSource:         "Coach Directories",
		},
		{
			BusinessName:       "Soul Alignment Mentoring",
			ContactPerson:      "Lisa Anderson",
			Email:              "lisa@soulsalignment.com",
			Phone:              "(555) 890-1234",
			Employees:          1,
			Niche:              "Spiritual Coaching",
			OnlinePresence:     "Minimal - Facebook page only, no website",
			QualificationScore: 86,
			Notes:              "Solo practitioner with growing demand, ready to scale",
			LeadSource:         "Facebook Business Pages",
		},
	},
}
