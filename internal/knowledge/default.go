package knowledge

import "github.com/ppiankov/symptomatic/internal/model"

// DefaultConditions returns the reference condition definitions.
// A fresh slice is returned on every call.
func DefaultConditions() []model.ConditionDefinition {
	return []model.ConditionDefinition{
		{
			Key:           "common_cold",
			Name:          "Common Cold",
			Symptoms:      []string{"runny nose", "sneezing", "cough", "congestion", "sore throat", "fatigue"},
			SeverityRange: []int{1, 2, 3, 4},
			Description:   "A viral infection of the upper respiratory tract",
			Recommendations: []string{
				"Get plenty of rest",
				"Stay hydrated",
				"Use over-the-counter medications for symptom relief",
				"Consult a doctor if symptoms worsen or persist beyond 10 days",
			},
			Presentation: model.PresentationNeutral,
		},
		{
			Key:           "flu",
			Name:          "Influenza (Flu)",
			Symptoms:      []string{"fever", "chills", "muscle aches", "fatigue", "headache", "cough", "sore throat"},
			SeverityRange: []int{3, 4, 5, 6, 7},
			Description:   "A respiratory illness caused by influenza viruses",
			Recommendations: []string{
				"Rest and stay hydrated",
				"Consider antiviral medications if within 48 hours of symptom onset",
				"Monitor fever and seek medical attention if it exceeds 103°F",
				"Isolate to prevent spreading to others",
			},
			Presentation: model.PresentationNeutral,
		},
		{
			Key:           "migraine",
			Name:          "Migraine Headache",
			Symptoms:      []string{"severe headache", "nausea", "vomiting", "sensitivity to light", "sensitivity to sound"},
			SeverityRange: []int{5, 6, 7, 8, 9},
			Description:   "A neurological condition characterized by intense headaches",
			Recommendations: []string{
				"Rest in a dark, quiet room",
				"Apply cold or warm compress to head/neck",
				"Stay hydrated",
				"Consider prescription migraine medications",
			},
			Presentation: model.PresentationAcute,
		},
		{
			Key:           "gastroenteritis",
			Name:          "Gastroenteritis (Stomach Flu)",
			Symptoms:      []string{"nausea", "vomiting", "diarrhea", "stomach cramps", "fever", "dehydration"},
			SeverityRange: []int{3, 4, 5, 6},
			Description:   "Inflammation of the stomach and intestines",
			Recommendations: []string{
				"Stay hydrated with clear fluids",
				"Follow the BRAT diet (bananas, rice, applesauce, toast)",
				"Rest and avoid dairy products",
				"Seek medical attention if severe dehydration occurs",
			},
			Presentation: model.PresentationNeutral,
		},
		{
			Key:           "hypertension",
			Name:          "High Blood Pressure",
			Symptoms:      []string{"headaches", "dizziness", "blurred vision", "chest pain", "fatigue"},
			SeverityRange: []int{4, 5, 6, 7, 8},
			Description:   "Elevated blood pressure that can lead to serious health complications",
			Recommendations: []string{
				"Monitor blood pressure regularly",
				"Maintain a healthy diet low in sodium",
				"Exercise regularly",
				"Take prescribed medications as directed",
			},
			Presentation: model.PresentationChronic,
		},
		{
			Key:           "anxiety",
			Name:          "Anxiety Disorder",
			Symptoms:      []string{"excessive worry", "restlessness", "fatigue", "difficulty concentrating", "irritability", "sleep problems"},
			SeverityRange: []int{3, 4, 5, 6, 7, 8},
			Description:   "A mental health condition characterized by excessive worry and fear",
			Recommendations: []string{
				"Practice relaxation techniques",
				"Regular exercise and healthy lifestyle",
				"Consider therapy or counseling",
				"Discuss medication options with healthcare provider",
			},
			Presentation: model.PresentationChronic,
		},
		{
			Key:           "allergic_reaction",
			Name:          "Allergic Reaction",
			Symptoms:      []string{"itching", "hives", "swelling", "runny nose", "watery eyes", "difficulty breathing"},
			SeverityRange: []int{2, 3, 4, 5, 6, 7, 8, 9},
			Description:   "An immune system response to an allergen",
			Recommendations: []string{
				"Identify and avoid the allergen",
				"Use antihistamines for mild reactions",
				"Seek immediate medical attention for severe reactions",
				"Consider carrying an epinephrine auto-injector if prescribed",
			},
			Presentation: model.PresentationAcute,
		},
	}
}

// Default returns the reference catalog
func Default() *Catalog {
	c, err := New(DefaultConditions())
	if err != nil {
		// Built-in data is covered by tests; failing here is a programming error
		panic(err)
	}
	return c
}
