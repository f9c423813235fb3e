// Package stamp manages the version stamp of a component directory.
//
// The stamp is info.json inside the component directory:
//
//	{"version":"1.0.0","author":"alice","email":"a@x.com","cwd":"/src/widget","dirname":"widget"}
//
// The version command writes it; publish reads it and refuses a stamp whose
// recorded cwd is not the directory being published, which catches stamps
// copied along with a component into another checkout.
package stamp
