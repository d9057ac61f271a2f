package normalize

// DefaultTable returns the built-in synonym table. Order matters: it is the
// order tokens appear in explanations.
func DefaultTable() []Mapping {
	return []Mapping{
		{Token: "headache", Forms: []string{"headache", "head pain", "head ache"}},
		{Token: "fever", Forms: []string{"fever", "temperature", "hot", "feverish"}},
		{Token: "cough", Forms: []string{"cough", "coughing"}},
		{Token: "fatigue", Forms: []string{"tired", "fatigue", "exhausted", "weakness", "weak"}},
		{Token: "nausea", Forms: []string{"nausea", "sick", "queasy"}},
		{Token: "vomiting", Forms: []string{"vomiting", "throwing up", "vomit"}},
		{Token: "diarrhea", Forms: []string{"diarrhea", "loose stool", "loose stools"}},
		{Token: "runny nose", Forms: []string{"runny nose", "nasal congestion", "congestion"}},
		{Token: "sore throat", Forms: []string{"sore throat", "throat pain"}},
		{Token: "muscle aches", Forms: []string{"muscle pain", "body aches", "aches", "muscle aches"}},
		{Token: "difficulty breathing", Forms: []string{"breathing problems", "shortness of breath", "difficulty breathing"}},
		{Token: "chest pain", Forms: []string{"chest pain", "chest discomfort"}},
		{Token: "dizziness", Forms: []string{"dizzy", "dizziness", "lightheaded"}},
		{Token: "itching", Forms: []string{"itchy", "itching", "itch"}},
		{Token: "swelling", Forms: []string{"swelling", "swollen"}},
		{Token: "blurred vision", Forms: []string{"blurred vision", "vision problems"}},
		{Token: "anxiety", Forms: []string{"anxious", "worried", "nervous", "panic"}},
		{Token: "stomach cramps", Forms: []string{"stomach pain", "abdominal pain", "cramps"}},
	}
}

// Default returns a normalizer over the built-in table
func Default() *Normalizer {
	n, err := New(DefaultTable())
	if err != nil {
		panic(err)
	}
	return n
}
