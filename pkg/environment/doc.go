// Package environment names the application environment (development,
// staging, production) and propagates it through context.Context.
//
// Parse turns the APP_ENV setting into an Environment. WithContext attaches it
// to a context, FromContext reads it back and IsDevelopment, IsStaging and
// IsProduction query it. logger.WithEnvironment uses Parse to pick log
// defaults.
//
// # Usage
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	ctx := environment.WithContext(context.Background(), env)
//	if environment.IsProduction(ctx) {
//	    // keep credentials out of output
//	}
//
// # Error Handling
//
// Helpers never return errors. Missing values result in the zero value ("").
package environment
