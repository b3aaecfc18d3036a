package seed

import "github.com/thuwalaco/thuwala-site/internal/model"

// The catalog below is the canonical baseline content of the site.
// Reconciliation inserts what is missing and never overwrites rows an
// admin has edited. Services use the title as identity key; portfolio
// items and advertisements are only seeded into a fully empty table.

// AdminUsername, AdminEmail and AdminDefaultPassword identify the
// account guaranteed to exist after reconciliation. The default
// credential must be rotated out-of-band after the first deployment.
const (
	AdminUsername        = "admin"
	AdminEmail           = "admin@thuwalaco.com"
	AdminDefaultPassword = "Admin@2024"
)

// Services is the full service catalog. ExpectedServiceCount is
// verified after seeding; a shortfall is reported, never corrected
// destructively.
var Services = []model.Service{
	{
		Title:       "Administrative & Executive Support",
		Description: "We provide seamless virtual and on-site administrative solutions to keep organizations and individuals operating with order and professionalism.",
		Icon:        "fas fa-clipboard-check",
		Details:     "Virtual assistant and secretarial services, Report writing, document formatting, and minute-taking, Calendar, meeting, and task management, Filing systems and office workflow setup, Policy, SOP, and documentation support",
		Category:    "administrative",
	},
	{
		Title:       "Project & Operations Support",
		Description: "We help organizations plan, execute, and report on their projects with precision and transparency.",
		Icon:        "fas fa-project-diagram",
		Details:     "Proposal and report writing, Budget tracking and procurement documentation, M&E data management and templates, Donor reporting and presentation packaging, Stakeholder coordination and communication",
		Category:    "operations",
	},
	{
		Title:       "Data Management & Analytics",
		Description: "Data drives decision-making. We transform raw data into actionable insights for businesses and NGOs.",
		Icon:        "fas fa-chart-bar",
		Details:     "Data collection (ODK, Kobo, SurveyCTO), Data entry, cleaning, and analysis, Dashboard design and visualization (Excel, Tableau, Power BI), Executive summaries and reports, Monitoring and evaluation support",
		Category:    "data",
	},
	{
		Title:       "Communications & Documentation",
		Description: "We help you communicate your story, impact, and value clearly to your audience, partners, and clients.",
		Icon:        "fas fa-bullhorn",
		Details:     "Corporate profiles and capability statements, Proposal and grant writing, Report editing and formatting, Success stories, press releases, and newsletters, Professional presentations and pitch decks",
		Category:    "communications",
	},
	{
		Title:       "Branding, Design & Marketing",
		Description: "We build brands that command attention and credibility — from logo design to full-scale marketing campaigns.",
		Icon:        "fas fa-palette",
		Details:     "Logo and brand identity design, Company profiles and marketing materials, Social media setup, strategy, and content creation, Digital marketing campaigns and advertising management, Personal branding for professionals",
		Category:    "branding",
	},
	{
		Title:       "Business & Startup Support",
		Description: "For entrepreneurs and SMEs, we provide all the foundational tools needed to launch, formalize, and grow.",
		Icon:        "fas fa-briefcase",
		Details:     "Business registration guidance, Proposal and business plan writing, Company profile creation, Digital system setup (emails, websites, cloud storage), Business strategy and growth consultation",
		Category:    "business",
	},
	{
		Title:       "Systems & Process Optimization",
		Description: "We introduce digital systems that save time, reduce errors, and enhance organizational accountability.",
		Icon:        "fas fa-cogs",
		Details:     "Workflow automation setup, File and record management systems, Collaboration tools (Google Workspace, Notion, Trello), Process mapping and optimization consulting, Staff training on productivity tools",
		Category:    "systems",
	},
	{
		Title:       "Capacity Building & Training",
		Description: "We empower professionals and teams with practical, modern skills in administration, communication, and data management.",
		Icon:        "fas fa-graduation-cap",
		Details:     "Office administration and documentation, Proposal and report writing, Data collection and reporting tools, Excel and visualization training, Communication and digital professionalism",
		Category:    "training",
	},
	{
		Title:       "Creative & Individual Services",
		Description: "Thuwala Co. also supports individuals with personal and professional growth tools.",
		Icon:        "fas fa-lightbulb",
		Details:     "CV, cover letter, and portfolio design, Personal branding strategy, LinkedIn optimization, Digital profile setup and presentation design, Event and speech support documentation",
		Category:    "creative",
	},
	{
		Title:       "Consulting & Strategy",
		Description: "Strategic guidance for organizational development and business growth.",
		Icon:        "fas fa-chess",
		Details:     "Business strategy development, Organizational structure optimization, Process improvement consulting, Market analysis and research, Performance metrics and KPIs",
		Category:    "consulting",
	},
}

// ExpectedServiceCount is the size the services table should reach
// after reconciliation.
var ExpectedServiceCount = len(Services)

// PortfolioItems is the sample portfolio, seeded only when the table
// is entirely empty.
var PortfolioItems = []model.PortfolioItem{
	{
		Title:        "Malawi NGO Data Dashboard",
		Client:       "Malawi Development NGO",
		Description:  "Designed and implemented a comprehensive data dashboard for monitoring and evaluation. The system collects field data via ODK and presents real-time insights through interactive Power BI dashboards.",
		Category:     "data",
		ImageURL:     "/static/images/portfolio/data-dashboard.jpg",
		Technologies: "Power BI, ODK, Python, SQL",
		Testimonial:  "Thuwala Co. transformed our data management. What used to take weeks now takes hours. Their dashboard helps us make data-driven decisions.",
		ClientName:   "John Banda",
		ClientRole:   "M&E Director",
		Featured:     true,
	},
	{
		Title:        "Startup Business Branding Package",
		Client:       "AgriTech Startup",
		Description:  "Complete branding package including logo design, business cards, company profile, and social media setup. Created a cohesive brand identity that helped secure initial funding.",
		Category:     "branding",
		ImageURL:     "/static/images/portfolio/branding-package.jpg",
		Technologies: "Adobe Creative Suite, Canva, WordPress",
		Testimonial:  "Professional, timely, and exceeded expectations. Our investors commented on how polished our materials looked.",
		ClientName:   "Sarah Chibwana",
		ClientRole:   "CEO & Founder",
		Featured:     true,
	},
	{
		Title:        "Government Project Reporting System",
		Client:       "Ministry Department",
		Description:  "Streamlined project reporting system that reduced report preparation time by 60%. Created templates, automated data collection, and trained staff on new processes.",
		Category:     "administrative",
		ImageURL:     "/static/images/portfolio/reporting-system.jpg",
		Technologies: "Microsoft Office, Google Workspace, Process Automation",
		Testimonial:  "The efficiency gains have been remarkable. Our team now focuses on analysis rather than data compilation.",
		ClientName:   "Dr. Michael Phiri",
		ClientRole:   "Project Director",
		Featured:     true,
	},
	{
		Title:        "Educational Institution Website Redesign",
		Client:       "Private College",
		Description:  "Complete website redesign with CMS integration, improving user engagement by 200%. Added online application system and student portal.",
		Category:     "systems",
		ImageURL:     "/static/images/portfolio/website-redesign.jpg",
		ProjectURL:   "https://example-college.mw",
		Technologies: "WordPress, PHP, JavaScript, CSS3",
		Testimonial:  "Our online applications increased by 150% after the redesign. Professional and student-friendly.",
		ClientName:   "Prof. Elizabeth Kachali",
		ClientRole:   "Principal",
		Featured:     true,
	},
	{
		Title:        "Corporate Training Program",
		Client:       "Financial Institution",
		Description:  "Designed and delivered Excel & Data Visualization training for 50+ staff members. Created custom training materials and follow-up support system.",
		Category:     "training",
		ImageURL:     "/static/images/portfolio/training-program.jpg",
		Technologies: "Excel, Power BI, Training Materials",
		Testimonial:  "The training was practical and immediately applicable. Staff confidence with data tools improved dramatically.",
		ClientName:   "Robert Mwale",
		ClientRole:   "HR Director",
		Featured:     false,
	},
	{
		Title:        "Business Process Optimization",
		Client:       "Manufacturing Company",
		Description:  "Analyzed and optimized supply chain documentation processes, reducing processing time by 40% and errors by 75%.",
		Category:     "operations",
		ImageURL:     "/static/images/portfolio/process-optimization.jpg",
		Technologies: "Process Mapping, SOP Development, Workflow Automation",
		Testimonial:  "The new processes saved us significant time and reduced frustration across departments.",
		ClientName:   "David Simbeye",
		ClientRole:   "Operations Manager",
		Featured:     true,
	},
}

// Advertisements is the sample banner set, seeded only when the table
// is entirely empty. Display orders are assigned sequentially from 1
// at seeding time.
var Advertisements = []model.Advertisement{
	{
		Title:           "Special Offer: 20% Off All Services",
		Description:     "Launch your projects with our professional services at a discounted rate. Limited time offer!",
		CTAText:         "Claim Offer",
		CTALink:         "/contact",
		BackgroundColor: "#dc2626",
		TextColor:       "#ffffff",
		IsActive:        true,
	},
	{
		Title:           "New: Data Analytics Dashboard Solutions",
		Description:     "Transform your raw data into actionable insights with our new dashboard solutions.",
		CTAText:         "Learn More",
		CTALink:         "/services",
		BackgroundColor: "#2563eb",
		TextColor:       "#ffffff",
		IsActive:        true,
	},
}
