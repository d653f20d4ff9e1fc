// Package remedex runs the symptom-to-remedy pipeline in-process: an LLM classifier
// restricted to a closed disease catalog, followed by a remedy matcher that filters the
// remedy table by disease, diet, allergy and age and picks one qualifying row at random.
//
//	client, err := remedex.New(ctx,
//	    remedex.WithDataset("data/remedies.csv"),
//	    remedex.WithOpenAI(os.Getenv("GROQ_API_KEY"), "", ""),
//	)
//	if err != nil { ... }
//	defer client.Close()
//
//	c, err := client.Consult(ctx, remedex.ConsultRequest{
//	    Age:      30,
//	    Allergy:  "none",
//	    Diet:     "vegetarian",
//	    Symptoms: []string{"Headache", "Nausea"},
//	})
//	switch c.Status {
//	case remedex.StatusRecommended: // c.Remedy is set
//	case remedex.StatusNoMatch:     // c.Disease is set, no row qualified
//	case remedex.StatusUnrecognized:
//	}
//
// The matcher can be used on its own with Match and Remedies; it never calls the model.
package remedex
