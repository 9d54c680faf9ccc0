package suggest

import "github.com/trezcool/ujumbe/core"

const (
	en = core.LangEnglish
	fr = core.LangFrench

	// CategoryGeneral is picked when no keyword matches.
	CategoryGeneral = "general"
)

type byLang map[string][]string

// Category is a kind of school message and the canned answers to it.
type Category struct {
	Name      string
	Keywords  byLang
	Replies   byLang
	Reactions []string
}

// catalog is ordered: on equal scores the first category wins, so safety related
// categories come first and the small talk ones last.
var catalog = []Category{
	{
		Name: "urgent_emergency",
		Keywords: byLang{
			en: {"emergency", "urgent", "urgently", "asap", "immediately", "ambulance", "hospital", "accident", "injured", "injury", "911"},
			fr: {"urgence", "urgent", "urgente", "immediatement", "ambulance", "hopital", "accident", "blesse", "blessee", "blessure", "au plus vite"},
		},
		Replies: byLang{
			en: {
				"Thank you for letting us know. We are dealing with it right away.",
				"Understood. I am contacting the school office immediately.",
				"We are on it. Please call the school directly if anyone is in danger.",
			},
			fr: {
				"Merci de nous avoir prévenus. Nous nous en occupons immédiatement.",
				"Bien compris. Je contacte le secrétariat de l'école tout de suite.",
				"Nous nous en chargeons. Appelez directement l'école si quelqu'un est en danger.",
			},
		},
		Reactions: []string{"🚨", "🙏", "👍"},
	},
	{
		Name: "safety_security",
		Keywords: byLang{
			en: {"safety", "unsafe", "security", "danger", "dangerous", "stranger", "threat", "weapon", "fire drill", "lockdown", "evacuation"},
			fr: {"securite", "danger", "dangereux", "dangereuse", "inconnu", "menace", "arme", "exercice incendie", "confinement", "evacuation"},
		},
		Replies: byLang{
			en: {
				"Thank you for raising this. Safety is our first priority and we will look into it now.",
				"We take this very seriously and will follow up with the security team today.",
				"Thanks for the alert. We will inform you of the measures taken.",
			},
			fr: {
				"Merci de nous le signaler. La sécurité est notre priorité et nous examinons cela immédiatement.",
				"Nous prenons cela très au sérieux et en parlerons à l'équipe de sécurité aujourd'hui.",
				"Merci pour l'alerte. Nous vous informerons des mesures prises.",
			},
		},
		Reactions: []string{"🛡️", "🙏", "👀"},
	},
	{
		Name: "bullying",
		Keywords: byLang{
			en: {"bully", "bullying", "bullied", "harass", "harassed", "harassment", "picked on", "teased", "mocked", "intimidated", "cyberbullying"},
			fr: {"harcelement", "harcele", "harcelee", "harceler", "intimidation", "intimide", "moque", "moquerie", "brimade", "cyberharcelement"},
		},
		Replies: byLang{
			en: {
				"Thank you for telling us. We will speak with the students involved and keep you informed.",
				"I am sorry to hear this. Bullying is not tolerated and we will act on it.",
				"Thanks for reaching out. Could we meet to discuss what happened?",
			},
			fr: {
				"Merci de nous en avoir parlé. Nous allons rencontrer les élèves concernés et vous tiendrons informé.",
				"Je suis désolé d'apprendre cela. Le harcèlement n'est pas toléré et nous allons agir.",
				"Merci de nous avoir contactés. Pouvons-nous nous rencontrer pour en discuter ?",
			},
		},
		Reactions: []string{"🛡️", "🙏", "💙"},
	},
	{
		Name: "sickness",
		Keywords: byLang{
			en: {"sick", "ill", "illness", "fever", "flu", "cold", "cough", "vomiting", "headache", "stomach ache", "not feeling well", "doctor", "covid"},
			fr: {"malade", "maladie", "fievre", "grippe", "rhume", "toux", "vomissement", "mal de tete", "mal au ventre", "pas bien", "medecin", "docteur", "covid"},
		},
		Replies: byLang{
			en: {
				"Sorry to hear that. Wishing a speedy recovery!",
				"Thank you for letting us know. Rest well and get better soon.",
				"Noted. We will share any missed work once they are feeling better.",
			},
			fr: {
				"Désolé de l'apprendre. Prompt rétablissement !",
				"Merci de nous avoir prévenus. Reposez-vous bien et bon rétablissement.",
				"C'est noté. Nous transmettrons le travail manqué dès que possible.",
			},
		},
		Reactions: []string{"🤒", "💐", "🙏"},
	},
	{
		Name: "allergy_medication",
		Keywords: byLang{
			en: {"allergy", "allergies", "allergic", "medication", "medicine", "inhaler", "epipen", "asthma", "prescription", "pills", "diabetes"},
			fr: {"allergie", "allergies", "allergique", "medicament", "medicaments", "traitement", "inhalateur", "asthme", "ordonnance", "diabete"},
		},
		Replies: byLang{
			en: {
				"Thank you, we have noted this in the student's health record.",
				"Noted. Please send the prescription or medical form to the school nurse.",
				"Thanks for the information. We will make sure the staff is aware.",
			},
			fr: {
				"Merci, nous l'avons noté dans le dossier médical de l'élève.",
				"C'est noté. Merci d'envoyer l'ordonnance ou la fiche médicale à l'infirmerie.",
				"Merci pour l'information. Nous veillerons à ce que l'équipe soit au courant.",
			},
		},
		Reactions: []string{"💊", "👍", "🙏"},
	},
	{
		Name: "counseling_wellbeing",
		Keywords: byLang{
			en: {"stress", "stressed", "anxiety", "anxious", "sad", "depressed", "worried", "counselor", "counselling", "counseling", "wellbeing", "mental health", "crying"},
			fr: {"stress", "stresse", "anxiete", "anxieux", "anxieuse", "triste", "deprime", "inquiet", "inquiete", "psychologue", "conseiller", "bien etre", "sante mentale", "pleure"},
		},
		Replies: byLang{
			en: {
				"Thank you for sharing this. Our counselor will reach out to offer support.",
				"We are here to help. Would you like to schedule a meeting with the school counselor?",
				"Thanks for trusting us with this. We will keep a close and caring eye.",
			},
			fr: {
				"Merci de nous en faire part. Notre conseiller prendra contact pour apporter son soutien.",
				"Nous sommes là pour aider. Souhaitez-vous un rendez-vous avec le psychologue scolaire ?",
				"Merci de votre confiance. Nous resterons attentifs et bienveillants.",
			},
		},
		Reactions: []string{"💙", "🤗", "🙏"},
	},
	{
		Name: "special_needs",
		Keywords: byLang{
			en: {"special needs", "learning disability", "dyslexia", "adhd", "autism", "accommodation", "iep", "extra support", "learning support"},
			fr: {"besoins particuliers", "handicap", "dyslexie", "tdah", "autisme", "amenagement", "pap", "soutien scolaire", "accompagnement"},
		},
		Replies: byLang{
			en: {
				"Thank you. We will review the support plan with our learning support team.",
				"Noted. Let's set up a meeting to discuss the right accommodations.",
				"Thanks for the update. We will share this with the teachers concerned.",
			},
			fr: {
				"Merci. Nous allons revoir le plan d'accompagnement avec l'équipe pédagogique.",
				"C'est noté. Organisons une rencontre pour discuter des aménagements adaptés.",
				"Merci pour l'information. Nous la transmettrons aux enseignants concernés.",
			},
		},
		Reactions: []string{"🤝", "💙", "👍"},
	},
	{
		Name: "absence",
		Keywords: byLang{
			en: {"absent", "absence", "miss school", "missing school", "will not attend", "won t attend", "won t be in", "not coming", "stay home", "staying home", "day off"},
			fr: {"absent", "absente", "absence", "absences", "ne viendra pas", "manquera", "manquer l ecole", "reste a la maison", "rester a la maison", "jour de conge"},
		},
		Replies: byLang{
			en: {
				"Thank you for letting us know. The absence has been recorded.",
				"Noted, thanks. We will share any missed work.",
				"Thanks for the notice. Please send a written note when they return.",
			},
			fr: {
				"Merci de nous avoir prévenus. L'absence a été enregistrée.",
				"C'est noté, merci. Nous transmettrons le travail manqué.",
				"Merci pour l'information. Merci de fournir un justificatif au retour.",
			},
		},
		Reactions: []string{"👍", "📝", "🙏"},
	},
	{
		Name: "late_arrival",
		Keywords: byLang{
			en: {"late", "running late", "delayed", "delay", "arrive late", "traffic", "tardy", "overslept"},
			fr: {"retard", "en retard", "retarde", "arrivera tard", "embouteillage", "bouchons", "panne de reveil"},
		},
		Replies: byLang{
			en: {
				"Thanks for letting us know. See you soon!",
				"Noted. Please check in at the front office on arrival.",
				"No problem, thank you for the heads-up.",
			},
			fr: {
				"Merci de nous avoir prévenus. À tout à l'heure !",
				"C'est noté. Merci de passer par l'accueil à l'arrivée.",
				"Pas de souci, merci de l'information.",
			},
		},
		Reactions: []string{"⏰", "👍", "🙂"},
	},
	{
		Name: "early_pickup",
		Keywords: byLang{
			en: {"pick up", "pickup", "picking up", "collect", "early dismissal", "leave early", "leaving early", "pick him up", "pick her up"},
			fr: {"recuperer", "chercher", "venir chercher", "sortie anticipee", "partir plus tot", "quitter plus tot", "recuperation"},
		},
		Replies: byLang{
			en: {
				"Noted. We will have them ready at the front office.",
				"Thank you. Please sign them out at reception when you arrive.",
				"Understood, we will let the teacher know.",
			},
			fr: {
				"C'est noté. Nous le préparerons à l'accueil.",
				"Merci. Merci de signer le registre de sortie à l'accueil.",
				"Bien compris, nous prévenons l'enseignant.",
			},
		},
		Reactions: []string{"🚗", "👍", "🕒"},
	},
	{
		Name: "transport",
		Keywords: byLang{
			en: {"bus", "school bus", "bus stop", "transport", "transportation", "driver", "carpool", "ride"},
			fr: {"bus", "car scolaire", "arret de bus", "transport", "transports", "chauffeur", "covoiturage", "navette"},
		},
		Replies: byLang{
			en: {
				"Thanks, we will check with the transport coordinator.",
				"Noted. We will update the bus roster accordingly.",
				"Thank you. We will get back to you about the transport arrangements.",
			},
			fr: {
				"Merci, nous vérifions auprès du responsable des transports.",
				"C'est noté. Nous mettrons à jour la liste du bus.",
				"Merci. Nous reviendrons vers vous concernant le transport.",
			},
		},
		Reactions: []string{"🚌", "👍", "📍"},
	},
	{
		Name: "weather_closure",
		Keywords: byLang{
			en: {"snow", "storm", "flood", "flooding", "heavy rain", "weather", "school closed", "closure", "power outage"},
			fr: {"neige", "tempete", "inondation", "fortes pluies", "meteo", "ecole fermee", "fermeture", "coupure de courant", "intemperies"},
		},
		Replies: byLang{
			en: {
				"Thanks for asking. We will send an update as soon as a decision is made.",
				"Please check your notifications. Any closure will be announced there.",
				"Stay safe! We will keep everyone informed.",
			},
			fr: {
				"Merci pour la question. Nous enverrons une mise à jour dès qu'une décision sera prise.",
				"Consultez vos notifications, toute fermeture y sera annoncée.",
				"Soyez prudents ! Nous tiendrons tout le monde informé.",
			},
		},
		Reactions: []string{"🌧️", "❄️", "👍"},
	},
	{
		Name: "holiday_closure",
		Keywords: byLang{
			en: {"holiday", "holidays", "vacation", "break", "term break", "day off school", "public holiday", "mid term"},
			fr: {"vacances", "conge", "conges", "jour ferie", "ferie", "pont", "rentree", "fin de trimestre"},
		},
		Replies: byLang{
			en: {
				"Thanks! The school calendar with all holidays is available in the app.",
				"Enjoy the break!",
				"Noted. School resumes as planned in the calendar.",
			},
			fr: {
				"Merci ! Le calendrier scolaire avec toutes les vacances est disponible dans l'application.",
				"Bonnes vacances !",
				"C'est noté. La reprise se fera comme prévu au calendrier.",
			},
		},
		Reactions: []string{"🏖️", "🎉", "📅"},
	},
	{
		Name: "schedule_change",
		Keywords: byLang{
			en: {"reschedule", "rescheduled", "postpone", "postponed", "cancel", "cancelled", "canceled", "moved to", "change of plan", "schedule change"},
			fr: {"reporter", "reporte", "reportee", "annule", "annulee", "annulation", "deplace", "changement d horaire", "changement de programme"},
		},
		Replies: byLang{
			en: {
				"Thanks for the update, noted.",
				"Understood. Could you confirm the new date and time?",
				"No problem, we will adjust accordingly.",
			},
			fr: {
				"Merci pour la mise à jour, c'est noté.",
				"Bien compris. Pouvez-vous confirmer la nouvelle date et l'heure ?",
				"Pas de problème, nous allons nous adapter.",
			},
		},
		Reactions: []string{"📅", "👍", "🔄"},
	},
	{
		Name: "timetable",
		Keywords: byLang{
			en: {"timetable", "schedule", "class times", "start time", "end time", "what time", "period", "bell"},
			fr: {"emploi du temps", "horaire", "horaires", "heure de debut", "heure de fin", "a quelle heure", "sonnerie"},
		},
		Replies: byLang{
			en: {
				"The timetable is available in the app under Classes.",
				"Thanks for asking. I will send you the updated timetable.",
				"Classes start and end as shown on the published timetable.",
			},
			fr: {
				"L'emploi du temps est disponible dans l'application, rubrique Classes.",
				"Merci pour la question. Je vous envoie l'emploi du temps à jour.",
				"Les cours suivent l'emploi du temps publié.",
			},
		},
		Reactions: []string{"🕒", "📅", "👍"},
	},
	{
		Name: "homework_extension",
		Keywords: byLang{
			en: {"extension", "more time", "extra time", "deadline", "due date", "late submission", "submit late", "hand in late"},
			fr: {"prolongation", "plus de temps", "delai", "date limite", "date de remise", "rendre en retard", "remise tardive"},
		},
		Replies: byLang{
			en: {
				"Thanks for asking. I can extend the deadline by a couple of days.",
				"Let me check and get back to you about the deadline.",
				"Please submit what you have and we will discuss the rest.",
			},
			fr: {
				"Merci de demander. Je peux prolonger le délai de quelques jours.",
				"Je vérifie et je reviens vers vous concernant le délai.",
				"Merci de rendre ce qui est fait et nous discuterons du reste.",
			},
		},
		Reactions: []string{"⏳", "👍", "📚"},
	},
	{
		Name: "homework",
		Keywords: byLang{
			en: {"homework", "assignment", "assignments", "worksheet", "exercise", "exercises", "project", "essay", "coursework"},
			fr: {"devoir", "devoirs", "exercice", "exercices", "travail a la maison", "projet", "redaction", "expose", "fiche"},
		},
		Replies: byLang{
			en: {
				"Thanks for your message. The homework details are posted in the class page.",
				"Good question! I will explain it again in class tomorrow.",
				"Thank you, I have received the homework.",
			},
			fr: {
				"Merci pour votre message. Les détails du devoir sont publiés sur la page de la classe.",
				"Bonne question ! Je l'expliquerai à nouveau demain en classe.",
				"Merci, j'ai bien reçu le devoir.",
			},
		},
		Reactions: []string{"📚", "✏️", "👍"},
	},
	{
		Name: "exam",
		Keywords: byLang{
			en: {"exam", "exams", "test", "tests", "quiz", "midterm", "final exam", "revision", "revise", "study for"},
			fr: {"examen", "examens", "controle", "interrogation", "interro", "evaluation", "partiel", "revisions", "reviser", "epreuve"},
		},
		Replies: byLang{
			en: {
				"Thanks for asking. The exam covers the chapters listed on the class page.",
				"Good luck with the revisions!",
				"I will share a revision sheet before the exam.",
			},
			fr: {
				"Merci pour la question. L'examen porte sur les chapitres indiqués sur la page de la classe.",
				"Bon courage pour les révisions !",
				"Je partagerai une fiche de révision avant l'examen.",
			},
		},
		Reactions: []string{"📝", "🍀", "💪"},
	},
	{
		Name: "grades",
		Keywords: byLang{
			en: {"grade", "grades", "mark", "marks", "score", "scores", "result", "results", "marking", "graded"},
			fr: {"note", "notes", "resultat", "resultats", "moyenne", "bareme", "correction", "corrige"},
		},
		Replies: byLang{
			en: {
				"Thanks for your question. Grades are published in the app once marking is complete.",
				"I'd be happy to go over the results with you.",
				"Let me review it and get back to you.",
			},
			fr: {
				"Merci pour votre question. Les notes sont publiées dans l'application une fois la correction terminée.",
				"Je serai ravi de revoir les résultats avec vous.",
				"Je vérifie et je reviens vers vous.",
			},
		},
		Reactions: []string{"📊", "👍", "👏"},
	},
	{
		Name: "report_card",
		Keywords: byLang{
			en: {"report card", "report cards", "school report", "progress report", "transcript", "term report"},
			fr: {"bulletin", "bulletins", "bulletin scolaire", "releve de notes", "livret scolaire", "bilan trimestriel"},
		},
		Replies: byLang{
			en: {
				"Report cards will be shared at the end of the term.",
				"Thanks for asking. I will check the status of the report card.",
				"You can download the report card from the app once it is published.",
			},
			fr: {
				"Les bulletins seront transmis en fin de trimestre.",
				"Merci pour la question. Je vérifie l'état du bulletin.",
				"Vous pourrez télécharger le bulletin dans l'application dès sa publication.",
			},
		},
		Reactions: []string{"📄", "👍", "📊"},
	},
	{
		Name: "parent_meeting",
		Keywords: byLang{
			en: {"parent teacher", "parents evening", "parent meeting", "meet the teacher", "conference", "discuss my child", "talk about my child"},
			fr: {"reunion parents", "reunion parents professeurs", "rencontre parents", "rencontrer l enseignant", "parler de mon enfant", "entretien"},
		},
		Replies: byLang{
			en: {
				"I would be glad to meet. What time suits you best?",
				"Thank you. Please pick a slot in the meeting schedule.",
				"Sure, let's meet this week to discuss.",
			},
			fr: {
				"Avec plaisir. Quel horaire vous conviendrait le mieux ?",
				"Merci. Merci de choisir un créneau dans le planning des rencontres.",
				"Bien sûr, rencontrons-nous cette semaine pour en discuter.",
			},
		},
		Reactions: []string{"🤝", "📅", "👍"},
	},
	{
		Name: "appointment",
		Keywords: byLang{
			en: {"appointment", "meeting", "meet", "available", "availability", "book a time", "slot", "call me"},
			fr: {"rendez vous", "rdv", "reunion", "rencontrer", "disponible", "disponibilite", "creneau", "appelez moi"},
		},
		Replies: byLang{
			en: {
				"Sure! When would be a good time for you?",
				"I am available tomorrow after classes. Does that work?",
				"Thanks, I will confirm a time shortly.",
			},
			fr: {
				"Bien sûr ! Quel moment vous conviendrait ?",
				"Je suis disponible demain après les cours. Cela vous convient-il ?",
				"Merci, je vous confirme un horaire rapidement.",
			},
		},
		Reactions: []string{"📅", "👍", "🤝"},
	},
	{
		Name: "fees_payment",
		Keywords: byLang{
			en: {"fee", "fees", "tuition", "payment", "pay", "paid", "invoice", "receipt", "balance", "refund", "installment"},
			fr: {"frais", "frais de scolarite", "minerval", "paiement", "payer", "paye", "facture", "recu", "solde", "remboursement", "versement"},
		},
		Replies: byLang{
			en: {
				"Thank you. The finance office will confirm the payment shortly.",
				"Thanks for your message. I am forwarding it to the accounts department.",
				"You can find the invoice and payment options in the app.",
			},
			fr: {
				"Merci. Le service financier confirmera le paiement rapidement.",
				"Merci pour votre message. Je le transmets au service comptabilité.",
				"La facture et les moyens de paiement sont disponibles dans l'application.",
			},
		},
		Reactions: []string{"💳", "🧾", "👍"},
	},
	{
		Name: "uniform",
		Keywords: byLang{
			en: {"uniform", "uniforms", "dress code", "shoes", "sweater", "jersey", "pe kit", "tie"},
			fr: {"uniforme", "uniformes", "tenue", "code vestimentaire", "chaussures", "pull", "blouse", "tenue de sport"},
		},
		Replies: byLang{
			en: {
				"Thanks for asking. The uniform list is available at the front office.",
				"Noted, thank you for letting us know.",
				"Uniforms can be ordered from the school shop.",
			},
			fr: {
				"Merci pour la question. La liste de l'uniforme est disponible à l'accueil.",
				"C'est noté, merci de nous avoir prévenus.",
				"Les uniformes peuvent être commandés à la boutique de l'école.",
			},
		},
		Reactions: []string{"👕", "👍", "🙂"},
	},
	{
		Name: "lunch_meals",
		Keywords: byLang{
			en: {"lunch", "lunchbox", "meal", "meals", "canteen", "cafeteria", "snack", "food", "menu", "breakfast"},
			fr: {"dejeuner", "repas", "cantine", "gouter", "collation", "nourriture", "menu", "petit dejeuner", "restauration"},
		},
		Replies: byLang{
			en: {
				"Thanks! The weekly menu is posted in the app.",
				"Noted. We will let the canteen team know.",
				"Thank you for the information about meals.",
			},
			fr: {
				"Merci ! Le menu de la semaine est publié dans l'application.",
				"C'est noté. Nous prévenons l'équipe de la cantine.",
				"Merci pour l'information concernant les repas.",
			},
		},
		Reactions: []string{"🍎", "🥪", "👍"},
	},
	{
		Name: "behavior",
		Keywords: byLang{
			en: {"behavior", "behaviour", "misbehave", "misbehaving", "discipline", "detention", "disruptive", "rude", "fight", "fighting", "punishment"},
			fr: {"comportement", "discipline", "retenue", "colle", "perturbateur", "insolent", "impoli", "bagarre", "punition", "sanction"},
		},
		Replies: byLang{
			en: {
				"Thank you for the update. We will work on this together.",
				"I appreciate you raising this. Let's discuss how to support them.",
				"Noted. I will follow up with the class teacher.",
			},
			fr: {
				"Merci pour l'information. Nous allons travailler ensemble sur ce point.",
				"Merci de l'avoir signalé. Discutons de la meilleure façon de l'accompagner.",
				"C'est noté. Je fais le point avec le professeur principal.",
			},
		},
		Reactions: []string{"🤝", "👀", "👍"},
	},
	{
		Name: "lost_item",
		Keywords: byLang{
			en: {"lost", "missing", "lost and found", "forgot", "forgotten", "left behind", "can t find", "water bottle", "jacket"},
			fr: {"perdu", "perdue", "objets trouves", "oublie", "oubliee", "introuvable", "gourde", "veste", "manteau"},
		},
		Replies: byLang{
			en: {
				"Thanks, we will check the lost and found.",
				"I will ask around in class and let you know.",
				"Please label belongings. We will keep an eye out.",
			},
			fr: {
				"Merci, nous allons vérifier aux objets trouvés.",
				"Je vais demander en classe et je vous tiens au courant.",
				"Pensez à marquer les affaires. Nous restons attentifs.",
			},
		},
		Reactions: []string{"🔍", "🎒", "👍"},
	},
	{
		Name: "field_trip",
		Keywords: byLang{
			en: {"field trip", "school trip", "excursion", "outing", "museum", "visit", "trip"},
			fr: {"sortie scolaire", "sortie", "excursion", "voyage scolaire", "musee", "visite", "classe verte"},
		},
		Replies: byLang{
			en: {
				"Thanks! The trip details are in the latest notification.",
				"We are looking forward to the trip!",
				"Please return the signed consent form before the trip.",
			},
			fr: {
				"Merci ! Les détails de la sortie sont dans la dernière notification.",
				"Nous avons hâte d'y être !",
				"Merci de retourner l'autorisation signée avant la sortie.",
			},
		},
		Reactions: []string{"🚌", "🎒", "😃"},
	},
	{
		Name: "permission_slip",
		Keywords: byLang{
			en: {"permission slip", "consent form", "consent", "sign the form", "signed form", "authorization", "authorisation", "waiver"},
			fr: {"autorisation", "autorisation parentale", "formulaire", "signer", "signe", "signee", "decharge", "consentement"},
		},
		Replies: byLang{
			en: {
				"Thank you, the signed form has been received.",
				"Please return the signed form by the end of the week.",
				"Thanks! I will send a new copy of the form.",
			},
			fr: {
				"Merci, le formulaire signé a bien été reçu.",
				"Merci de rendre le formulaire signé d'ici la fin de la semaine.",
				"Merci ! Je vous envoie une nouvelle copie du formulaire.",
			},
		},
		Reactions: []string{"✍️", "📄", "👍"},
	},
	{
		Name: "event",
		Keywords: byLang{
			en: {"event", "ceremony", "graduation", "concert", "show", "festival", "fair", "open day", "celebration", "party", "assembly"},
			fr: {"evenement", "ceremonie", "remise des diplomes", "concert", "spectacle", "fete", "kermesse", "portes ouvertes", "celebration"},
		},
		Replies: byLang{
			en: {
				"Thanks! We look forward to seeing you there.",
				"Great! More details will follow soon.",
				"Thank you for your interest in the event.",
			},
			fr: {
				"Merci ! Nous avons hâte de vous y voir.",
				"Super ! Plus de détails suivront bientôt.",
				"Merci pour votre intérêt pour l'événement.",
			},
		},
		Reactions: []string{"🎉", "🎭", "😃"},
	},
	{
		Name: "enrollment",
		Keywords: byLang{
			en: {"enrol", "enroll", "enrolment", "enrollment", "register", "registration", "admission", "admissions", "apply", "application", "new student"},
			fr: {"inscription", "inscrire", "reinscription", "admission", "candidature", "dossier d inscription", "nouvel eleve", "nouvelle eleve"},
		},
		Replies: byLang{
			en: {
				"Thank you for your interest! The admissions office will contact you.",
				"You can find the enrollment steps and documents in the app.",
				"Thanks, I am forwarding your request to admissions.",
			},
			fr: {
				"Merci pour votre intérêt ! Le service des admissions vous contactera.",
				"Les étapes et documents d'inscription sont disponibles dans l'application.",
				"Merci, je transmets votre demande au service des inscriptions.",
			},
		},
		Reactions: []string{"📝", "🏫", "👍"},
	},
	{
		Name: "transfer",
		Keywords: byLang{
			en: {"transfer", "change school", "changing school", "moving", "relocate", "relocating", "withdraw", "withdrawal", "leaving the school"},
			fr: {"transfert", "changer d ecole", "changement d ecole", "demenagement", "demenager", "retrait", "quitter l ecole", "mutation"},
		},
		Replies: byLang{
			en: {
				"Thank you for letting us know. The office will prepare the transfer documents.",
				"We are sorry to see you go. Please contact the office for the next steps.",
				"Noted. We will send you the withdrawal form.",
			},
			fr: {
				"Merci de nous avoir prévenus. Le secrétariat préparera les documents de transfert.",
				"Nous sommes désolés de vous voir partir. Contactez le secrétariat pour la suite.",
				"C'est noté. Nous vous envoyons le formulaire de retrait.",
			},
		},
		Reactions: []string{"📦", "🙏", "👍"},
	},
	{
		Name: "documents_certificate",
		Keywords: byLang{
			en: {"certificate", "attestation", "document", "documents", "letter", "proof of enrollment", "school certificate", "birth certificate", "copy"},
			fr: {"certificat", "attestation", "document", "documents", "lettre", "certificat de scolarite", "acte de naissance", "copie", "justificatif"},
		},
		Replies: byLang{
			en: {
				"Thanks, the office will prepare the document within two working days.",
				"Noted. You can pick up the certificate at the front office.",
				"Thank you. I am forwarding your request to the secretariat.",
			},
			fr: {
				"Merci, le secrétariat préparera le document sous deux jours ouvrables.",
				"C'est noté. Le certificat pourra être récupéré à l'accueil.",
				"Merci. Je transmets votre demande au secrétariat.",
			},
		},
		Reactions: []string{"📄", "🗂️", "👍"},
	},
	{
		Name: "books_supplies",
		Keywords: byLang{
			en: {"book", "books", "textbook", "textbooks", "supplies", "stationery", "notebook", "calculator", "school bag", "materials"},
			fr: {"livre", "livres", "manuel", "manuels", "fournitures", "cahier", "cahiers", "calculatrice", "cartable", "materiel"},
		},
		Replies: byLang{
			en: {
				"Thanks! The supplies list is available in the class page.",
				"Noted. I will check which books are needed.",
				"Thank you, we have spare materials if needed.",
			},
			fr: {
				"Merci ! La liste des fournitures est disponible sur la page de la classe.",
				"C'est noté. Je vérifie quels livres sont nécessaires.",
				"Merci, nous avons du matériel de rechange si besoin.",
			},
		},
		Reactions: []string{"📚", "✏️", "👍"},
	},
	{
		Name: "password_reset",
		Keywords: byLang{
			en: {"password", "reset password", "forgot password", "forgot my password", "locked out", "account locked"},
			fr: {"mot de passe", "reinitialiser", "mot de passe oublie", "compte bloque", "reinitialisation"},
		},
		Replies: byLang{
			en: {
				"You can reset your password from the login page using 'Forgot password'.",
				"Thanks, I will ask an administrator to reset your access.",
				"Please check your inbox for the password reset link.",
			},
			fr: {
				"Vous pouvez réinitialiser votre mot de passe depuis la page de connexion avec « Mot de passe oublié ».",
				"Merci, je demande à un administrateur de réinitialiser votre accès.",
				"Vérifiez votre boîte mail pour le lien de réinitialisation.",
			},
		},
		Reactions: []string{"🔑", "👍", "🙂"},
	},
	{
		Name: "technology_login",
		Keywords: byLang{
			en: {"login", "log in", "sign in", "account", "app", "website", "laptop", "tablet", "internet", "wifi", "computer", "not working", "bug", "error"},
			fr: {"connexion", "se connecter", "compte", "application", "site", "ordinateur", "tablette", "internet", "wifi", "ne marche pas", "ne fonctionne pas", "bug", "erreur"},
		},
		Replies: byLang{
			en: {
				"Thanks for reporting this. Our IT team will look into it.",
				"Could you send a screenshot of the error?",
				"Please try logging out and back in, and let us know if it persists.",
			},
			fr: {
				"Merci de l'avoir signalé. Notre équipe informatique va examiner cela.",
				"Pouvez-vous envoyer une capture d'écran de l'erreur ?",
				"Essayez de vous déconnecter puis reconnecter, et dites-nous si le problème persiste.",
			},
		},
		Reactions: []string{"💻", "🔧", "👍"},
	},
	{
		Name: "library",
		Keywords: byLang{
			en: {"library", "librarian", "borrow", "borrowed", "return the book", "overdue", "reading list"},
			fr: {"bibliotheque", "cdi", "bibliothecaire", "emprunter", "emprunte", "rendre le livre", "en retard de retour", "liste de lecture"},
		},
		Replies: byLang{
			en: {
				"Thanks! The library is open every weekday during breaks.",
				"Noted. I will let the librarian know.",
				"Please return borrowed books by the due date.",
			},
			fr: {
				"Merci ! La bibliothèque est ouverte en semaine pendant les récréations.",
				"C'est noté. Je préviens le bibliothécaire.",
				"Merci de rendre les livres empruntés avant la date prévue.",
			},
		},
		Reactions: []string{"📖", "📚", "👍"},
	},
	{
		Name: "sports",
		Keywords: byLang{
			en: {"sport", "sports", "pe", "physical education", "football", "soccer", "basketball", "swimming", "match", "tournament", "training", "gym"},
			fr: {"sport", "sports", "eps", "education physique", "football", "foot", "basket", "natation", "match", "tournoi", "entrainement", "gymnase"},
		},
		Replies: byLang{
			en: {
				"Thanks! Go team!",
				"Noted. The coach will share the training schedule.",
				"Great, thank you for the update on sports.",
			},
			fr: {
				"Merci ! Allez l'équipe !",
				"C'est noté. L'entraîneur partagera le planning des entraînements.",
				"Super, merci pour l'information sur le sport.",
			},
		},
		Reactions: []string{"⚽", "🏆", "💪"},
	},
	{
		Name: "clubs_activities",
		Keywords: byLang{
			en: {"club", "clubs", "activity", "activities", "after school", "extracurricular", "choir", "drama", "chess", "robotics"},
			fr: {"club", "clubs", "activite", "activites", "parascolaire", "periscolaire", "chorale", "theatre", "echecs", "robotique"},
		},
		Replies: byLang{
			en: {
				"Thanks for your interest! Sign-ups are open at the front office.",
				"Great idea! I will share the activities schedule.",
				"Noted, we will add them to the club list.",
			},
			fr: {
				"Merci pour votre intérêt ! Les inscriptions sont ouvertes à l'accueil.",
				"Bonne idée ! Je partage le planning des activités.",
				"C'est noté, nous l'ajoutons à la liste du club.",
			},
		},
		Reactions: []string{"🎨", "🎭", "😃"},
	},
	{
		Name: "volunteering",
		Keywords: byLang{
			en: {"volunteer", "volunteers", "volunteering", "help out", "chaperone", "donate", "donation", "pta"},
			fr: {"benevole", "benevoles", "benevolat", "aider", "accompagnateur", "accompagnatrice", "don", "dons", "association des parents"},
		},
		Replies: byLang{
			en: {
				"Thank you so much for offering to help!",
				"Wonderful! I will add you to the volunteers list.",
				"Thanks! We will contact you with the details.",
			},
			fr: {
				"Merci beaucoup de proposer votre aide !",
				"Formidable ! Je vous ajoute à la liste des bénévoles.",
				"Merci ! Nous vous contacterons avec les détails.",
			},
		},
		Reactions: []string{"🙌", "💙", "🤝"},
	},
	{
		Name: "complaint",
		Keywords: byLang{
			en: {"complaint", "complain", "unhappy", "disappointed", "unacceptable", "not satisfied", "dissatisfied", "unfair", "problem", "issue"},
			fr: {"plainte", "reclamation", "mecontent", "mecontente", "decu", "decue", "inacceptable", "pas satisfait", "injuste", "probleme", "souci"},
		},
		Replies: byLang{
			en: {
				"Thank you for your feedback. We are sorry for the inconvenience and will look into it.",
				"I understand your concern. Could we discuss it in person?",
				"Thanks for bringing this to our attention. We will get back to you shortly.",
			},
			fr: {
				"Merci pour votre retour. Nous sommes désolés pour ce désagrément et allons examiner la situation.",
				"Je comprends votre préoccupation. Pouvons-nous en discuter de vive voix ?",
				"Merci d'avoir attiré notre attention sur ce point. Nous revenons vers vous rapidement.",
			},
		},
		Reactions: []string{"🙏", "👀", "🤝"},
	},
	{
		Name: "praise_compliment",
		Keywords: byLang{
			en: {"great job", "well done", "excellent", "amazing", "wonderful", "proud", "impressed", "fantastic", "good work", "appreciate"},
			fr: {"bravo", "bien joue", "excellent", "excellente", "formidable", "fier", "fiere", "impressionne", "super travail", "apprecie"},
		},
		Replies: byLang{
			en: {
				"Thank you so much for your kind words!",
				"That means a lot, thank you!",
				"Thanks! We are proud of our students too.",
			},
			fr: {
				"Merci beaucoup pour vos mots gentils !",
				"Cela nous touche beaucoup, merci !",
				"Merci ! Nous sommes fiers de nos élèves aussi.",
			},
		},
		Reactions: []string{"😊", "💖", "👏"},
	},
	{
		Name: "congratulations",
		Keywords: byLang{
			en: {"congratulations", "congrats", "won", "winner", "award", "prize", "achievement", "passed", "birthday"},
			fr: {"felicitations", "gagne", "gagnant", "gagnante", "prix", "recompense", "reussite", "reussi", "anniversaire"},
		},
		Replies: byLang{
			en: {
				"Congratulations! Well deserved!",
				"Thank you! We are all very proud.",
				"What great news, congratulations!",
			},
			fr: {
				"Félicitations ! Bien mérité !",
				"Merci ! Nous sommes tous très fiers.",
				"Quelle bonne nouvelle, félicitations !",
			},
		},
		Reactions: []string{"🎉", "🏆", "🥳"},
	},
	{
		Name: "contact_update",
		Keywords: byLang{
			en: {"phone number", "new number", "new address", "email address", "contact details", "update my", "changed my"},
			fr: {"numero de telephone", "nouveau numero", "nouvelle adresse", "adresse mail", "adresse e mail", "coordonnees", "mettre a jour"},
		},
		Replies: byLang{
			en: {
				"Thanks, we have updated your contact details.",
				"Noted. You can also update your details in your profile.",
				"Thank you, the office will update our records.",
			},
			fr: {
				"Merci, nous avons mis à jour vos coordonnées.",
				"C'est noté. Vous pouvez aussi modifier vos informations dans votre profil.",
				"Merci, le secrétariat mettra à jour nos fichiers.",
			},
		},
		Reactions: []string{"📇", "👍", "✅"},
	},
	{
		Name: "reminder",
		Keywords: byLang{
			en: {"reminder", "remind", "don t forget", "do not forget", "remember", "friendly reminder"},
			fr: {"rappel", "rappeler", "n oubliez pas", "ne pas oublier", "pensez a", "petit rappel"},
		},
		Replies: byLang{
			en: {
				"Thanks for the reminder!",
				"Noted, thank you.",
				"Thank you, I have added it to my calendar.",
			},
			fr: {
				"Merci pour le rappel !",
				"C'est noté, merci.",
				"Merci, je l'ai ajouté à mon agenda.",
			},
		},
		Reactions: []string{"⏰", "👍", "📌"},
	},
	{
		Name: "confirmation",
		Keywords: byLang{
			en: {"confirm", "confirmed", "confirmation", "received", "noted", "ok", "okay", "sounds good", "agreed"},
			fr: {"confirme", "confirmer", "confirmation", "recu", "bien recu", "note", "d accord", "ca marche", "entendu"},
		},
		Replies: byLang{
			en: {
				"Great, thank you for confirming!",
				"Perfect, thanks!",
				"Thanks, all set.",
			},
			fr: {
				"Parfait, merci pour la confirmation !",
				"Très bien, merci !",
				"Merci, c'est tout bon.",
			},
		},
		Reactions: []string{"✅", "👍", "👌"},
	},
	{
		Name: "apology",
		Keywords: byLang{
			en: {"sorry", "apologize", "apologise", "apologies", "my apologies", "my bad", "excuse me", "forgive"},
			fr: {"desole", "desolee", "excuse", "excusez", "excuses", "pardon", "je m excuse", "navre", "navree"},
		},
		Replies: byLang{
			en: {
				"No worries at all, thank you for letting us know.",
				"That's quite alright!",
				"Apology accepted, thanks for the message.",
			},
			fr: {
				"Aucun souci, merci de nous avoir prévenus.",
				"Ce n'est pas grave du tout !",
				"Pas de problème, merci pour le message.",
			},
		},
		Reactions: []string{"🙂", "👍", "🤗"},
	},
	{
		Name: "farewell",
		Keywords: byLang{
			en: {"goodbye", "bye", "farewell", "see you", "last day", "take care", "have a nice weekend", "have a good day"},
			fr: {"au revoir", "adieu", "a bientot", "a plus", "dernier jour", "prenez soin", "bon week end", "bonne journee", "bonne soiree"},
		},
		Replies: byLang{
			en: {
				"Take care, see you soon!",
				"Thank you, have a great day!",
				"Goodbye and all the best!",
			},
			fr: {
				"Prenez soin de vous, à bientôt !",
				"Merci, bonne journée !",
				"Au revoir et bonne continuation !",
			},
		},
		Reactions: []string{"👋", "😊", "💐"},
	},
	{
		Name: "thanks",
		Keywords: byLang{
			en: {"thank you", "thanks", "thank", "thx", "grateful", "many thanks", "much appreciated"},
			fr: {"merci", "merci beaucoup", "remercie", "remerciements", "reconnaissant", "reconnaissante", "mille mercis"},
		},
		Replies: byLang{
			en: {
				"You're welcome!",
				"My pleasure, happy to help.",
				"Anytime! Let me know if you need anything else.",
			},
			fr: {
				"Je vous en prie !",
				"Avec plaisir, ravi d'avoir pu aider.",
				"De rien ! N'hésitez pas si vous avez besoin d'autre chose.",
			},
		},
		Reactions: []string{"🙏", "😊", "❤️"},
	},
	{
		Name: "greeting",
		Keywords: byLang{
			en: {"hello", "hi", "hey", "good morning", "good afternoon", "good evening", "greetings", "dear"},
			fr: {"bonjour", "bonsoir", "salut", "coucou", "cher", "chere", "madame", "monsieur"},
		},
		Replies: byLang{
			en: {
				"Hello! How can I help you?",
				"Hi, thanks for reaching out!",
				"Good day! What can I do for you?",
			},
			fr: {
				"Bonjour ! Comment puis-je vous aider ?",
				"Bonjour, merci de nous avoir contactés !",
				"Bonne journée ! Que puis-je faire pour vous ?",
			},
		},
		Reactions: []string{"👋", "😊", "🙂"},
	},
	{
		Name: "question_general",
		Keywords: byLang{
			en: {"question", "questions", "wondering", "could you tell", "can you tell", "how do", "how can", "is it possible", "information", "clarify"},
			fr: {"question", "questions", "je me demande", "pourriez vous", "pouvez vous", "comment faire", "est il possible", "renseignement", "information", "preciser"},
		},
		Replies: byLang{
			en: {
				"Good question! Let me find out and get back to you.",
				"Thanks for asking. I will reply with the details shortly.",
				"Happy to help. Could you give me a bit more detail?",
			},
			fr: {
				"Bonne question ! Je me renseigne et je reviens vers vous.",
				"Merci pour la question. Je vous réponds avec les détails rapidement.",
				"Avec plaisir. Pouvez-vous me donner un peu plus de détails ?",
			},
		},
		Reactions: []string{"❓", "🤔", "👍"},
	},
	{
		Name:     CategoryGeneral,
		Keywords: byLang{en: {}, fr: {}},
		Replies: byLang{
			en: {
				"Thank you for your message.",
				"Noted, thanks! I will get back to you soon.",
				"Thanks for reaching out.",
			},
			fr: {
				"Merci pour votre message.",
				"C'est noté, merci ! Je reviens vers vous rapidement.",
				"Merci de nous avoir contactés.",
			},
		},
		Reactions: []string{"👍", "🙂", "🙏"},
	},
}

// Catalog returns the ordered categories.
func Catalog() []Category {
	return catalog
}
