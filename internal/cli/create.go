package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rpggio/quotedesk/internal/domain/catalog"
	"github.com/spf13/cobra"
)

func newCreateCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a customer or product",
	}
	cmd.AddCommand(newCreateCustomerCmd(st), newCreateProductCmd(st))
	return cmd
}

func newCreateCustomerCmd(st *state) *cobra.Command {
	var in catalog.CustomerInput
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Create a customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := st.app.Console.CreateCustomer(cmd.Context(), in)
			return reportCreate(cmd, msg, err)
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "Company name")
	f.StringVar(&in.Email, "email", "", "Contact email")
	f.StringVar(&in.Currency, "currency", "", "Billing currency ("+strings.Join(catalog.Currencies, ", ")+")")
	f.StringVar(&in.BillingContact, "billing-contact", "", "Billing contact name")
	f.StringVar(&in.Location, "address", "", "Street address")
	f.StringVar(&in.City, "city", "", "City")
	f.StringVar(&in.PostalCode, "postal-code", "", "Postal code")
	f.StringVar(&in.Country, "country", catalog.DefaultCountry, "Country ("+strings.Join(catalog.Countries(), ", ")+")")
	f.StringVar(&in.State, "state", "", "State or province within the country")
	return cmd
}

func newCreateProductCmd(st *state) *cobra.Command {
	var in catalog.ProductInput
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := st.app.Console.CreateProduct(cmd.Context(), in)
			return reportCreate(cmd, msg, err)
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "Product name")
	return cmd
}

// reportCreate prints the console's message on success and returns it as the
// error otherwise. cobra adds its own "Error: " prefix.
func reportCreate(cmd *cobra.Command, msg string, err error) error {
	if err != nil {
		return errors.New(strings.TrimPrefix(msg, "Error: "))
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), msg)
	return err
}
