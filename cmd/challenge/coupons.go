package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/outwit/tetris-challenge/internal/outcome"
	"github.com/outwit/tetris-challenge/internal/storage"
)

var flagCouponsLimit int

var couponsCmd = &cobra.Command{
	Use:   "coupons",
	Short: "List or redeem issued coupons",
	Long: `Coupons are issued to players who reach the win score.

Examples:
  challenge coupons list
  challenge coupons redeem OUTWIT-AI-7K2QZ`,
}

var couponsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List issued coupons, newest first",
	Args:  cobra.NoArgs,
	Run:   runCouponsList,
}

var couponsRedeemCmd = &cobra.Command{
	Use:   "redeem <code>",
	Short: "Mark a coupon as used",
	Args:  cobra.ExactArgs(1),
	Run:   runCouponsRedeem,
}

func init() {
	couponsListCmd.Flags().IntVarP(&flagCouponsLimit, "limit", "n", 50, "Number of coupons to show")

	couponsCmd.AddCommand(couponsListCmd)
	couponsCmd.AddCommand(couponsRedeemCmd)
}

func runCouponsList(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	coupons, err := store.Coupons(flagCouponsLimit)
	if err != nil {
		exitf("retrieving coupons: %v", err)
	}

	if len(coupons) == 0 {
		fmt.Println("No coupons issued yet.")
		return
	}

	fmt.Printf("  %-16s  %-6s  %-32s  %-16s  %s\n", "Code", "Score", "Email", "Issued", "Used")
	fmt.Printf("  %-16s  %-6s  %-32s  %-16s  %s\n", "----", "-----", "-----", "------", "----")
	for _, c := range coupons {
		used := "no"
		if c.Used {
			used = "yes, " + c.UsedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-16s  %-6d  %-32s  %-16s  %s\n",
			c.Code, c.Score, c.UserEmail, c.GeneratedAt.Local().Format("2006-01-02 15:04"), used)
	}
}

func runCouponsRedeem(_ *cobra.Command, args []string) {
	code := strings.ToUpper(strings.TrimSpace(args[0]))
	if !outcome.ValidCouponCode(code) {
		exitf("%q is not a coupon code (expected %sXXXXX)", args[0], outcome.CouponPrefix)
	}

	store := openStore()
	defer store.Close()

	c, err := store.RedeemCoupon(code)
	switch {
	case errors.Is(err, storage.ErrCouponNotFound):
		exitf("coupon %s not found", code)
	case errors.Is(err, storage.ErrCouponUsed):
		exitf("coupon %s was already used on %s", code, c.UsedAt.Local().Format("2006-01-02 15:04"))
	case err != nil:
		exitf("redeeming coupon: %v", err)
	}

	fmt.Printf("Coupon %s redeemed (score %d, %s).\n", c.Code, c.Score, c.UserEmail)
}
