package analysis

var sampleResult = mustResult(Result{
	Skills:          []string{"Python", "JavaScript", "SQL", "Machine Learning", "Data Analysis", "React", "AWS"},
	ExperienceYears: 3.5,
	EducationLevel:  "Bachelor's",
	Recommendations: []string{
		"Consider highlighting your machine learning projects more prominently",
		"Add metrics to quantify your achievements (e.g., 'Improved performance by 25%')",
		"Include more industry-specific keywords for ATS optimization",
		"Consider obtaining AWS certification to enhance your cloud skills",
	},
	CareerMatches: []CareerMatch{
		{Role: "Data Scientist", Match: 85},
		{Role: "Machine Learning Engineer", Match: 78},
		{Role: "Software Developer", Match: 72},
		{Role: "Data Analyst", Match: 68},
		{Role: "DevOps Engineer", Match: 55},
	},
	SkillCategories: map[string]int{
		"Technical Skills":   82,
		"Soft Skills":        75,
		"Leadership":         68,
		"Industry Knowledge": 60,
	},
	ResumeScore: 76,
})

var demoResult = mustResult(Result{
	Skills:          []string{"Python", "JavaScript", "SQL", "Machine Learning", "Data Analysis", "React", "AWS", "Docker", "Git", "TensorFlow"},
	ExperienceYears: 4.2,
	EducationLevel:  "Master's",
	Recommendations: []string{
		"Add more quantifiable achievements to your work experience",
		"Include a projects section to showcase your technical skills",
		"Consider adding a summary section at the top of your resume",
		"Tailor your skills section to include more industry-specific keywords",
	},
	CareerMatches: []CareerMatch{
		{Role: "Data Scientist", Match: 92},
		{Role: "Machine Learning Engineer", Match: 88},
		{Role: "Data Engineer", Match: 85},
		{Role: "Software Developer", Match: 78},
		{Role: "Data Analyst", Match: 75},
	},
	SkillCategories: map[string]int{
		"Technical Skills":     90,
		"Data Analysis":        85,
		"Machine Learning":     88,
		"Cloud Computing":      75,
		"Software Development": 82,
	},
	ResumeScore: 84,
})

// SampleResult is the fixed answer of the stub provider.
func SampleResult() Result { return sampleResult.clone() }

// DemoResult is shown when no document has been uploaded.
func DemoResult() Result { return demoResult.clone() }
