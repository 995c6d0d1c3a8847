package resumes

var techniques = []string{
	"Use action verbs to start each bullet point (e.g., 'Developed', 'Implemented', 'Managed')",
	"Quantify achievements with numbers and metrics whenever possible",
	"Tailor your resume to each specific job application",
	"Include relevant keywords from the job description",
	"Keep your resume concise (1-2 pages maximum)",
	"Use a clean, professional layout with consistent formatting",
	"Highlight your most relevant experiences and skills at the top",
	"Include a skills section with both technical and soft skills",
	"Proofread carefully for spelling and grammar errors",
	"Include links to your portfolio, GitHub, or LinkedIn profile",
}
